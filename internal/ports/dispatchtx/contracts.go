package dispatchtx

import (
	"context"

	"service-dispatch/internal/domain"
)

// Repository is the unit-of-work surface over deliveries, clusters, offers
// and the courier read side. Every method runs inside the transaction the
// repository was opened with; lookups return (nil, nil) when the row is
// absent. ForUpdate variants take a row lock so that concurrent accepts race
// at the persistence layer and exactly one observes the offer as pending.
type Repository interface {
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	UpdateDelivery(ctx context.Context, d *domain.Delivery) error

	GetCluster(ctx context.Context, id string) (*domain.DeliveryCluster, error)
	GetClusterForUpdate(ctx context.Context, id string) (*domain.DeliveryCluster, error)
	InsertCluster(ctx context.Context, c *domain.DeliveryCluster) error
	UpdateCluster(ctx context.Context, c *domain.DeliveryCluster) error
	DeleteCluster(ctx context.Context, id string) error
	ListClustersByDelivery(ctx context.Context, deliveryID string) ([]domain.DeliveryCluster, error)

	InsertOffer(ctx context.Context, o *domain.DeliveryOffer) error
	UpdateOffer(ctx context.Context, o *domain.DeliveryOffer) error
	GetOfferForUpdate(ctx context.Context, id string) (*domain.DeliveryOffer, error)
	FindOfferForUpdate(ctx context.Context, clusterID, courierID string) (*domain.DeliveryOffer, error)
	ListPendingOffersByClusterForUpdate(ctx context.Context, clusterID string) ([]domain.DeliveryOffer, error)
	ListOpenOffersByDelivery(ctx context.Context, deliveryID string) ([]domain.DeliveryOffer, error)

	GetCourier(ctx context.Context, id string) (*domain.Courier, error)
}

// Runner is a transaction runner. The whole fn either commits or rolls back.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
