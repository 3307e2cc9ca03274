package domain

import "time"

// TrackingSnapshot is the embedded tracking state of a cluster.
type TrackingSnapshot struct {
	Status    string
	Location  Point
	UpdatedAt time.Time
}

// DeliveryCluster - one vendor-to-customer (or relay) pickup leg of a delivery.
// A delivery with N distinct vendors has N clusters; a split replaces one
// cluster with a pickup leg and a delivery leg.
type DeliveryCluster struct {
	ID              string
	DeliveryID      string
	VendorID        *string
	Pickup          *Point
	Dropoff         Point
	DistanceKm      float64
	Price           int64
	Status          ClusterStatus
	CourierID       *string
	AssignedAt      *time.Time
	SequenceOrder   int
	PickupConfirmed bool
	PickupTime      *time.Time
	Tracking        *TrackingSnapshot
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Assigned reports whether the cluster has a courier.
func (c *DeliveryCluster) Assigned() bool {
	return c.CourierID != nil && *c.CourierID != ""
}

// UnassignedCluster is a cluster without a courier together with its pending
// offers, for dispatcher dashboards.
type UnassignedCluster struct {
	Cluster       DeliveryCluster
	PendingOffers []DeliveryOffer
}
