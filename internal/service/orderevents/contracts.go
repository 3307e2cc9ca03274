package orderevents

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// DispatchPort abstracts the subset of dispatch operations needed when
// handling order events.
type DispatchPort interface {
	CreateDelivery(ctx context.Context, orderID string) (*domain.Delivery, error)
	CancelDelivery(ctx context.Context, deliveryID string) error
}

// TxRunner abstracts running a function within a dispatch transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}
