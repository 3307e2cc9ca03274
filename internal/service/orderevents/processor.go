package orderevents

import (
	"context"
	"errors"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Processor turns order events into dispatch calls. Events whose status it
// does not recognize are acknowledged and dropped.
type Processor struct {
	dispatch DispatchPort
	runner   TxRunner
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a new order events Processor.
func NewProcessor(dispatch DispatchPort, runner TxRunner, logger logx.Logger) *Processor {
	p := &Processor{dispatch: dispatch, runner: runner, logger: logger}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single order event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	_, err := p.dispatch.CreateDelivery(ctx, e.OrderID)
	// a delivery already exists for this order: the event is a duplicate
	if errors.Is(err, apperr.ErrInvalidState) {
		p.logger.Debug("order event ignored: delivery already exists",
			logx.String("order_id", e.OrderID),
		)
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	var deliveryID string
	err := p.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDeliveryByOrderID(ctx, e.OrderID)
		if err != nil {
			return err
		}
		if d != nil {
			deliveryID = d.ID
		}
		return nil
	})
	if err != nil {
		return err
	}
	if deliveryID == "" {
		return nil
	}

	err = p.dispatch.CancelDelivery(ctx, deliveryID)
	// already terminal: nothing left to cancel
	if errors.Is(err, apperr.ErrInvalidState) || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
