package domain

import "time"

// DeliveryOffer - a time-boxed proposal of a cluster to one candidate courier.
// At most one offer per cluster may be accepted; accepting one expires every
// other pending sibling in the same unit of work.
type DeliveryOffer struct {
	ID           string
	DeliveryID   string
	ClusterID    string
	CourierID    string
	Status       OfferStatus
	OfferedPrice int64
	DistanceKm   float64
	Active       bool
	CreatedAt    time.Time
	ExpiryTime   time.Time
	RespondedAt  *time.Time
}

// Open reports whether the offer can still be acted on by its courier.
func (o *DeliveryOffer) Open(now time.Time) bool {
	return o.Status == OfferPending && o.Active && now.Before(o.ExpiryTime)
}
