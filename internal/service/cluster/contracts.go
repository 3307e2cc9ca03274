//go:generate mockgen -source=contracts.go -destination=cluster_mocks_test.go -package=cluster

package cluster

import (
	"context"

	"service-dispatch/internal/domain"
)

type clusterLister interface {
	ListUnassignedClusters(ctx context.Context) ([]domain.UnassignedCluster, error)
	GetTracking(ctx context.Context, deliveryID string) ([]domain.DeliveryCluster, error)
}
