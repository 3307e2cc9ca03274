// Package orderevents reacts to order lifecycle events from the orders
// service: created orders become deliveries, canceled orders cancel them.
package orderevents

import "time"

// Event is a single order event.
type Event struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
