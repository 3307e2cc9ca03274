// Package notify defines the fire-and-forget notification sink consumed by
// dispatch. A failed send never aborts the dispatch transaction.
package notify

import "context"

// RecipientKind discriminates the recipient variant.
type RecipientKind string

// List of recipient kinds
const (
	KindUser RecipientKind = "user"
	KindRole RecipientKind = "role"
)

// Recipient is a tagged variant: either a single user or everyone in a role.
type Recipient struct {
	Kind RecipientKind
	ID   string
}

// User addresses a single user by id.
func User(id string) Recipient {
	return Recipient{Kind: KindUser, ID: id}
}

// Role addresses every user holding the named role.
func Role(name string) Recipient {
	return Recipient{Kind: KindRole, ID: name}
}

// List of notification event types
const (
	EventOfferCreated      = "offer_created"
	EventOfferExpired      = "offer_expired"
	EventOfferDeclined     = "offer_declined"
	EventOfferCanceled     = "offer_canceled"
	EventClusterAssigned   = "cluster_assigned"
	EventClusterSplit      = "cluster_split"
	EventTrackingUpdated   = "tracking_updated"
	EventDeliveryAssigned  = "delivery_assigned"
	EventDeliveryCancelled = "delivery_cancelled"
	EventDeliveryCompleted = "delivery_completed"
)

// Message is one notification payload.
type Message struct {
	Recipient  Recipient      `json:"recipient"`
	EventType  string         `json:"event_type"`
	EntityID   string         `json:"entity_id"`
	EntityType string         `json:"entity_type"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Notifier delivers notifications. Implementations must be non-blocking from
// the caller's point of view and must swallow delivery failures.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}
