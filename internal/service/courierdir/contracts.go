package courierdir

import (
	"context"

	"service-dispatch/internal/domain"
)

type courierReader interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	FindAvailable(ctx context.Context) ([]domain.Courier, error)
}

type locationReader interface {
	Positions(ctx context.Context, courierIDs []string) (map[string]domain.Point, error)
}
