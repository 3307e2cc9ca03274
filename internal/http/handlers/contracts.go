package handlers

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/cluster"
	"service-dispatch/internal/service/dispatch"
)

type dispatchUsecase interface {
	CreateDelivery(ctx context.Context, orderID string) (*domain.Delivery, error)
	AutoAssign(ctx context.Context, clusterID string, pickupOverride *domain.Point) error
	AcceptOffer(ctx context.Context, clusterID, courierID string) (*domain.AssignResult, error)
	DeclineOffer(ctx context.Context, clusterID, courierID string) error
	CancelOffer(ctx context.Context, clusterID, courierID string) error
	CancelDelivery(ctx context.Context, deliveryID string) error
	CompleteDelivery(ctx context.Context, deliveryID, courierID string) error
}

// NewDispatchUsecase wires the dispatch orchestrator into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type clusterUsecase interface {
	AssignDriver(ctx context.Context, clusterID, courierID string) (*domain.DeliveryCluster, error)
	UpdateTracking(ctx context.Context, clusterID, status string, location domain.Point) (*domain.DeliveryCluster, error)
	GetUnassigned(ctx context.Context) ([]domain.UnassignedCluster, error)
	GetTracking(ctx context.Context, deliveryID string) ([]domain.DeliveryCluster, error)
}

// NewClusterUsecase wires the cluster manager into a clusterUsecase.
func NewClusterUsecase(svc *cluster.Service) clusterUsecase {
	return svc
}

type locationWriter interface {
	Update(ctx context.Context, courierID string, p domain.Point) error
	Remove(ctx context.Context, courierID string) error
}

// NewLocationWriter wires the redis location store into a locationWriter.
func NewLocationWriter(store *repository.LocationStore) locationWriter {
	return store
}

type courierReader interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
}

// NewCourierReader wires the courier repository into a courierReader.
func NewCourierReader(repo *repository.CourierRepo) courierReader {
	return repo
}
