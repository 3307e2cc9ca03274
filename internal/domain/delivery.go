package domain

import "time"

// Delivery - one per order (or order subset) requiring physical transport.
type Delivery struct {
	ID             string
	OrderID        string
	CustomerID     string
	Dropoff        Point
	Status         DeliveryStatus
	CourierID      *string
	RetryCount     int
	TrackingNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeliveredAt    *time.Time
}

// AssignResult - the outcome of a courier accepting an offer for a cluster.
type AssignResult struct {
	DeliveryID string
	ClusterID  string
	CourierID  string
	Split      bool
	// RelayClusterID is set when the accept triggered a split; it names the
	// pickup leg that still needs a courier.
	RelayClusterID string
}
