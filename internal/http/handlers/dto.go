package handlers

import "time"

type pointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type createDeliveryRequest struct {
	OrderID string `json:"order_id"`
}

type deliveryResponse struct {
	ID             string  `json:"id"`
	OrderID        string  `json:"order_id"`
	CustomerID     string  `json:"customer_id"`
	Status         string  `json:"status"`
	CourierID      *string `json:"courier_id,omitempty"`
	TrackingNumber string  `json:"tracking_number"`
	RetryCount     int     `json:"retry_count"`
}

type courierActionRequest struct {
	CourierID string `json:"courier_id"`
}

type autoAssignRequest struct {
	Pickup *pointDTO `json:"pickup,omitempty"`
}

type assignResultResponse struct {
	DeliveryID     string `json:"delivery_id"`
	ClusterID      string `json:"cluster_id"`
	CourierID      string `json:"courier_id"`
	Split          bool   `json:"split"`
	RelayClusterID string `json:"relay_cluster_id,omitempty"`
}

type updateTrackingRequest struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

type trackingResponse struct {
	ClusterID     string    `json:"cluster_id"`
	SequenceOrder int       `json:"sequence_order"`
	Status        string    `json:"status"`
	Location      *pointDTO `json:"location,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

type clusterResponse struct {
	ID            string     `json:"id"`
	DeliveryID    string     `json:"delivery_id"`
	VendorID      *string    `json:"vendor_id,omitempty"`
	Pickup        *pointDTO  `json:"pickup,omitempty"`
	Dropoff       pointDTO   `json:"dropoff"`
	DistanceKm    float64    `json:"distance_km"`
	Price         int64      `json:"price"`
	Status        string     `json:"status"`
	CourierID     *string    `json:"courier_id,omitempty"`
	AssignedAt    *time.Time `json:"assigned_at,omitempty"`
	SequenceOrder int        `json:"sequence_order"`
}

type offerResponse struct {
	ID           string    `json:"id"`
	CourierID    string    `json:"courier_id"`
	OfferedPrice int64     `json:"offered_price"`
	DistanceKm   float64   `json:"distance_km"`
	ExpiryTime   time.Time `json:"expiry_time"`
}

type unassignedClusterResponse struct {
	Cluster       clusterResponse `json:"cluster"`
	PendingOffers []offerResponse `json:"pending_offers"`
}

type updateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type courierResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Available bool      `json:"available"`
	Status    string    `json:"status"`
	Location  *pointDTO `json:"location,omitempty"`
}
