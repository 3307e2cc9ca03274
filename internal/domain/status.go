package domain

type (
	// DeliveryStatus represents the status of a delivery.
	DeliveryStatus string
	// ClusterStatus represents the status of a delivery cluster.
	ClusterStatus string
	// OfferStatus represents the status of a delivery offer.
	OfferStatus string
	// CourierStatus represents the account status of a courier.
	CourierStatus string
)

// List of possible delivery statuses
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// List of possible cluster statuses
const (
	ClusterPending   ClusterStatus = "pending"
	ClusterAssigned  ClusterStatus = "assigned"
	ClusterCompleted ClusterStatus = "completed"
	ClusterCancelled ClusterStatus = "cancelled"
)

// List of possible offer statuses
const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
	OfferExpired  OfferStatus = "expired"
	OfferCanceled OfferStatus = "canceled"
)

// List of possible courier account statuses
const (
	CourierActive    CourierStatus = "active"
	CourierSuspended CourierStatus = "suspended"
)

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryAssigned, DeliveryDelivered, DeliveryCancelled,
}

var allowedClusterStatuses = [...]ClusterStatus{
	ClusterPending, ClusterAssigned, ClusterCompleted, ClusterCancelled,
}

var allowedOfferStatuses = [...]OfferStatus{
	OfferPending, OfferAccepted, OfferDeclined, OfferExpired, OfferCanceled,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the delivery status is final.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// Valid checks if the ClusterStatus is valid
func (s ClusterStatus) Valid() bool {
	for _, v := range allowedClusterStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the cluster status is final.
func (s ClusterStatus) Terminal() bool {
	return s == ClusterCompleted || s == ClusterCancelled
}

// Valid checks if the OfferStatus is valid
func (s OfferStatus) Valid() bool {
	for _, v := range allowedOfferStatuses {
		if s == v {
			return true
		}
	}
	return false
}
