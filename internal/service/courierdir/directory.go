// Package courierdir is the read-side courier directory consumed by
// dispatch: available couriers with their freshest known coordinates.
package courierdir

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Directory answers availability queries by merging the courier table with
// the live location store. When the caller asks for located couriers only a
// live position is offerable; the persisted fix fills in only while the
// location store is down.
type Directory struct {
	couriers         courierReader
	locations        locationReader
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewDirectory creates a new Directory.
func NewDirectory(couriers courierReader, locations locationReader, timeout time.Duration, logger logx.Logger) *Directory {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Directory{
		couriers:         couriers,
		locations:        locations,
		operationTimeout: timeout,
		logger:           logger,
	}
}

// FindAvailable returns active, available couriers. With withLocation set,
// couriers lacking a known position are filtered out and every returned
// courier carries coordinates.
func (d *Directory) FindAvailable(ctx context.Context, withLocation bool) ([]domain.Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, d.operationTimeout)
	defer cancel()

	couriers, err := d.couriers.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if !withLocation || len(couriers) == 0 {
		return couriers, nil
	}

	ids := make([]string, len(couriers))
	for i, c := range couriers {
		ids[i] = c.ID
	}

	positions, err := d.locations.Positions(ctx, ids)
	storeDown := err != nil
	if storeDown {
		// A dead location store must not blank out dispatch entirely;
		// fall back to the last persisted fix.
		d.logger.Warn("courier directory: location store unavailable", logx.Err(err))
		positions = nil
	}

	out := make([]domain.Courier, 0, len(couriers))
	for _, c := range couriers {
		if p, ok := positions[c.ID]; ok {
			cp := p
			c.Location = &cp
		} else if !storeDown {
			// The persisted fix is a display value only; without a live
			// position the courier is not offerable.
			continue
		}
		if c.Location == nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Get returns one courier with the freshest known location, nil if absent.
func (d *Directory) Get(ctx context.Context, id string) (*domain.Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, d.operationTimeout)
	defer cancel()

	c, err := d.couriers.Get(ctx, id)
	if err != nil || c == nil {
		return c, err
	}

	positions, err := d.locations.Positions(ctx, []string{id})
	if err != nil {
		d.logger.Warn("courier directory: location store unavailable",
			logx.String("courier_id", id), logx.Err(err))
		return c, nil
	}
	if p, ok := positions[id]; ok {
		cp := p
		c.Location = &cp
	}
	return c, nil
}
