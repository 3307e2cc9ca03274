//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch

package dispatch

import (
	"context"

	"service-dispatch/internal/domain"
	ordersgw "service-dispatch/internal/gateway/orders"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/cluster"
)

type offerLedger interface {
	CreateOffers(ctx context.Context, tx dispatchtx.Repository, cluster *domain.DeliveryCluster, candidates []domain.Candidate) ([]domain.DeliveryOffer, error)
	Accept(ctx context.Context, tx dispatchtx.Repository, offerID, courierID string) (*domain.DeliveryOffer, error)
	Decline(ctx context.Context, tx dispatchtx.Repository, offerID, courierID string) (*domain.DeliveryOffer, error)
	CancelAccepted(ctx context.Context, tx dispatchtx.Repository, offerID, courierID string) (*domain.DeliveryOffer, error)
	ExpireOpenOffers(ctx context.Context, tx dispatchtx.Repository, deliveryID string) error
	AcceptOpenOffers(ctx context.Context, tx dispatchtx.Repository, deliveryID string) error
}

type clusterManager interface {
	Create(ctx context.Context, tx dispatchtx.Repository, p cluster.CreateParams) (*domain.DeliveryCluster, error)
	Split(ctx context.Context, tx dispatchtx.Repository, c *domain.DeliveryCluster, courier *domain.Courier) (*cluster.SplitResult, error)
}

type courierDirectory interface {
	FindAvailable(ctx context.Context, withLocation bool) ([]domain.Courier, error)
	Get(ctx context.Context, id string) (*domain.Courier, error)
}

type orderFetcher interface {
	GetByID(ctx context.Context, id string) (*ordersgw.Order, error)
}
