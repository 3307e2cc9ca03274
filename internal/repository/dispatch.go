package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// DispatchRepo persists deliveries, clusters and offers.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// ListUnassignedClusters returns non-terminal clusters without a courier,
// together with their pending offers, for dispatcher dashboards.
func (r *DispatchRepo) ListUnassignedClusters(ctx context.Context) ([]domain.UnassignedCluster, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+clusterColumns+`
        FROM delivery_clusters c
        WHERE c.courier_id IS NULL
          AND c.status NOT IN ('completed', 'cancelled')
        ORDER BY c.created_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("list unassigned clusters: %w", err)
	}
	defer rows.Close()

	var clusters []domain.DeliveryCluster
	for rows.Next() {
		c, err := scanCluster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unassigned cluster: %w", err)
		}
		clusters = append(clusters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list unassigned clusters: %w", err)
	}

	out := make([]domain.UnassignedCluster, 0, len(clusters))
	for _, c := range clusters {
		offers, err := r.listPendingOffers(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.UnassignedCluster{Cluster: c, PendingOffers: offers})
	}
	return out, nil
}

func (r *DispatchRepo) listPendingOffers(ctx context.Context, clusterID string) ([]domain.DeliveryOffer, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+offerColumns+`
        FROM delivery_offers o
        WHERE o.cluster_id = $1 AND o.status = 'pending' AND o.active
        ORDER BY o.distance_km ASC
    `, clusterID)
	if err != nil {
		return nil, fmt.Errorf("list pending offers for cluster %q: %w", clusterID, err)
	}
	defer rows.Close()

	var offers []domain.DeliveryOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

// GetTracking returns the tracking snapshots of a delivery's clusters in
// sequence order.
func (r *DispatchRepo) GetTracking(ctx context.Context, deliveryID string) ([]domain.DeliveryCluster, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+clusterColumns+`
        FROM delivery_clusters c
        WHERE c.delivery_id = $1
        ORDER BY c.sequence_order ASC
    `, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get tracking for delivery %q: %w", deliveryID, err)
	}
	defer rows.Close()

	var clusters []domain.DeliveryCluster
	for rows.Next() {
		c, err := scanCluster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cluster: %w", err)
		}
		clusters = append(clusters, *c)
	}
	return clusters, rows.Err()
}
