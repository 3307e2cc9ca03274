package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/domain"
)

// CourierRepo is the read side over couriers. Courier accounts are mutated
// elsewhere; dispatch only consumes availability and location.
type CourierRepo struct {
	db *pgxpool.Pool
}

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo {
	return &CourierRepo{db: db}
}

// Get retrieves a courier by ID, nil if absent.
func (r *CourierRepo) Get(ctx context.Context, id string) (*domain.Courier, error) {
	row := r.db.QueryRow(ctx, `
        SELECT c.id, c.user_id, c.full_name, c.available, c.status, c.lat, c.lng
        FROM couriers c
        WHERE c.id = $1
    `, id)
	c, err := scanCourier(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %q: %w", id, err)
	}
	return c, nil
}

// FindAvailable returns active, available couriers.
func (r *CourierRepo) FindAvailable(ctx context.Context) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx, `
        SELECT c.id, c.user_id, c.full_name, c.available, c.status, c.lat, c.lng
        FROM couriers c
        WHERE c.available AND c.status = 'active'
        ORDER BY c.id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("find available couriers: %w", err)
	}
	defer rows.Close()

	var couriers []domain.Courier
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan courier: %w", err)
		}
		couriers = append(couriers, *c)
	}
	return couriers, rows.Err()
}
