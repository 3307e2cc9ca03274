package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"service-dispatch/internal/domain"
)

// TxRepo implements the dispatch unit-of-work over a single pgx transaction.
type TxRepo struct {
	tx pgx.Tx
}

type rowScanner interface {
	Scan(dest ...any) error
}

const deliveryColumns = `
    d.id, d.order_id, d.customer_id, d.dropoff_lat, d.dropoff_lng,
    d.status, d.courier_id, d.retry_count, d.tracking_number,
    d.created_at, d.updated_at, d.delivered_at`

const clusterColumns = `
    c.id, c.delivery_id, c.vendor_id, c.pickup_lat, c.pickup_lng,
    c.dropoff_lat, c.dropoff_lng, c.distance_km, c.price, c.status,
    c.courier_id, c.assigned_at, c.sequence_order, c.pickup_confirmed,
    c.pickup_time, c.tracking_status, c.tracking_lat, c.tracking_lng,
    c.tracking_updated_at, c.created_at, c.updated_at`

const offerColumns = `
    o.id, o.delivery_id, o.cluster_id, o.courier_id, o.status,
    o.offered_price, o.distance_km, o.active, o.created_at,
    o.expiry_time, o.responded_at`

func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(
		&d.ID, &d.OrderID, &d.CustomerID, &d.Dropoff.Lat, &d.Dropoff.Lng,
		&d.Status, &d.CourierID, &d.RetryCount, &d.TrackingNumber,
		&d.CreatedAt, &d.UpdatedAt, &d.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanCluster(row rowScanner) (*domain.DeliveryCluster, error) {
	var (
		c                    domain.DeliveryCluster
		pickupLat, pickupLng *float64
		trkStatus            *string
		trkLat, trkLng       *float64
		trkUpdatedAt         *time.Time
	)
	err := row.Scan(
		&c.ID, &c.DeliveryID, &c.VendorID, &pickupLat, &pickupLng,
		&c.Dropoff.Lat, &c.Dropoff.Lng, &c.DistanceKm, &c.Price, &c.Status,
		&c.CourierID, &c.AssignedAt, &c.SequenceOrder, &c.PickupConfirmed,
		&c.PickupTime, &trkStatus, &trkLat, &trkLng,
		&trkUpdatedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pickupLat != nil && pickupLng != nil {
		c.Pickup = &domain.Point{Lat: *pickupLat, Lng: *pickupLng}
	}
	if trkStatus != nil && trkLat != nil && trkLng != nil && trkUpdatedAt != nil {
		c.Tracking = &domain.TrackingSnapshot{
			Status:    *trkStatus,
			Location:  domain.Point{Lat: *trkLat, Lng: *trkLng},
			UpdatedAt: *trkUpdatedAt,
		}
	}
	return &c, nil
}

func scanOffer(row rowScanner) (*domain.DeliveryOffer, error) {
	var o domain.DeliveryOffer
	err := row.Scan(
		&o.ID, &o.DeliveryID, &o.ClusterID, &o.CourierID, &o.Status,
		&o.OfferedPrice, &o.DistanceKm, &o.Active, &o.CreatedAt,
		&o.ExpiryTime, &o.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetDelivery - get delivery by ID.
func (r *TxRepo) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries d
        WHERE d.id = $1
    `, id)
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %q: %w", id, err)
	}
	return d, nil
}

// GetDeliveryByOrderID - get delivery by order ID.
func (r *TxRepo) GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries d
        WHERE d.order_id = $1
    `, orderID)
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by order %q: %w", orderID, err)
	}
	return d, nil
}

// InsertDelivery - insert a new delivery.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO deliveries (
            id, order_id, customer_id, dropoff_lat, dropoff_lng,
            status, courier_id, retry_count, tracking_number,
            created_at, updated_at, delivered_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, d.ID, d.OrderID, d.CustomerID, d.Dropoff.Lat, d.Dropoff.Lng,
		string(d.Status), d.CourierID, d.RetryCount, d.TrackingNumber,
		d.CreatedAt, d.UpdatedAt, d.DeliveredAt)
	if err != nil {
		return fmt.Errorf("insert delivery %q: %w", d.ID, err)
	}
	return nil
}

// UpdateDelivery - persist the mutable fields of a delivery.
func (r *TxRepo) UpdateDelivery(ctx context.Context, d *domain.Delivery) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET status = $2, courier_id = $3, retry_count = $4,
            delivered_at = $5, updated_at = now()
        WHERE id = $1
    `, d.ID, string(d.Status), d.CourierID, d.RetryCount, d.DeliveredAt)
	if err != nil {
		return fmt.Errorf("update delivery %q: %w", d.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %q not found", d.ID)
	}
	return nil
}

// GetCluster - get cluster by ID.
func (r *TxRepo) GetCluster(ctx context.Context, id string) (*domain.DeliveryCluster, error) {
	return r.getCluster(ctx, id, false)
}

// GetClusterForUpdate - get cluster by ID with a row lock.
func (r *TxRepo) GetClusterForUpdate(ctx context.Context, id string) (*domain.DeliveryCluster, error) {
	return r.getCluster(ctx, id, true)
}

func (r *TxRepo) getCluster(ctx context.Context, id string, forUpdate bool) (*domain.DeliveryCluster, error) {
	q := `
        SELECT ` + clusterColumns + `
        FROM delivery_clusters c
        WHERE c.id = $1`
	if forUpdate {
		q += `
        FOR UPDATE`
	}
	c, err := scanCluster(r.tx.QueryRow(ctx, q, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cluster %q: %w", id, err)
	}
	return c, nil
}

// InsertCluster - insert a new cluster.
func (r *TxRepo) InsertCluster(ctx context.Context, c *domain.DeliveryCluster) error {
	var pickupLat, pickupLng *float64
	if c.Pickup != nil {
		pickupLat, pickupLng = &c.Pickup.Lat, &c.Pickup.Lng
	}
	_, err := r.tx.Exec(ctx, `
        INSERT INTO delivery_clusters (
            id, delivery_id, vendor_id, pickup_lat, pickup_lng,
            dropoff_lat, dropoff_lng, distance_km, price, status,
            courier_id, assigned_at, sequence_order, pickup_confirmed,
            pickup_time, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
    `, c.ID, c.DeliveryID, c.VendorID, pickupLat, pickupLng,
		c.Dropoff.Lat, c.Dropoff.Lng, c.DistanceKm, c.Price, string(c.Status),
		c.CourierID, c.AssignedAt, c.SequenceOrder, c.PickupConfirmed,
		c.PickupTime, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cluster %q: %w", c.ID, err)
	}
	return nil
}

// UpdateCluster - persist the mutable fields of a cluster.
func (r *TxRepo) UpdateCluster(ctx context.Context, c *domain.DeliveryCluster) error {
	var pickupLat, pickupLng *float64
	if c.Pickup != nil {
		pickupLat, pickupLng = &c.Pickup.Lat, &c.Pickup.Lng
	}
	var trkStatus *string
	var trkLat, trkLng *float64
	var trkUpdatedAt *time.Time
	if c.Tracking != nil {
		trkStatus = &c.Tracking.Status
		trkLat, trkLng = &c.Tracking.Location.Lat, &c.Tracking.Location.Lng
		trkUpdatedAt = &c.Tracking.UpdatedAt
	}
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_clusters
        SET pickup_lat = $2, pickup_lng = $3, distance_km = $4, price = $5,
            status = $6, courier_id = $7, assigned_at = $8,
            pickup_confirmed = $9, pickup_time = $10,
            tracking_status = $11, tracking_lat = $12, tracking_lng = $13,
            tracking_updated_at = $14, updated_at = now()
        WHERE id = $1
    `, c.ID, pickupLat, pickupLng, c.DistanceKm, c.Price,
		string(c.Status), c.CourierID, c.AssignedAt,
		c.PickupConfirmed, c.PickupTime,
		trkStatus, trkLat, trkLng, trkUpdatedAt)
	if err != nil {
		return fmt.Errorf("update cluster %q: %w", c.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("cluster %q not found", c.ID)
	}
	return nil
}

// DeleteCluster - delete a cluster (used by the split, which replaces the
// original leg with two relay legs).
func (r *TxRepo) DeleteCluster(ctx context.Context, id string) error {
	ct, err := r.tx.Exec(ctx, `DELETE FROM delivery_clusters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cluster %q: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("cluster %q not found", id)
	}
	return nil
}

// ListClustersByDelivery - list a delivery's clusters in sequence order.
func (r *TxRepo) ListClustersByDelivery(ctx context.Context, deliveryID string) ([]domain.DeliveryCluster, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+clusterColumns+`
        FROM delivery_clusters c
        WHERE c.delivery_id = $1
        ORDER BY c.sequence_order ASC
    `, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list clusters for delivery %q: %w", deliveryID, err)
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

// InsertOffer - insert a new offer.
func (r *TxRepo) InsertOffer(ctx context.Context, o *domain.DeliveryOffer) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO delivery_offers (
            id, delivery_id, cluster_id, courier_id, status,
            offered_price, distance_km, active, created_at,
            expiry_time, responded_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, o.ID, o.DeliveryID, o.ClusterID, o.CourierID, string(o.Status),
		o.OfferedPrice, o.DistanceKm, o.Active, o.CreatedAt,
		o.ExpiryTime, o.RespondedAt)
	if err != nil {
		return fmt.Errorf("insert offer %q: %w", o.ID, err)
	}
	return nil
}

// UpdateOffer - persist the mutable fields of an offer.
func (r *TxRepo) UpdateOffer(ctx context.Context, o *domain.DeliveryOffer) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_offers
        SET status = $2, active = $3, responded_at = $4
        WHERE id = $1
    `, o.ID, string(o.Status), o.Active, o.RespondedAt)
	if err != nil {
		return fmt.Errorf("update offer %q: %w", o.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("offer %q not found", o.ID)
	}
	return nil
}

// GetOfferForUpdate - get offer by ID with a row lock.
func (r *TxRepo) GetOfferForUpdate(ctx context.Context, id string) (*domain.DeliveryOffer, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+offerColumns+`
        FROM delivery_offers o
        WHERE o.id = $1
        FOR UPDATE
    `, id)
	o, err := scanOffer(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer %q: %w", id, err)
	}
	return o, nil
}

// FindOfferForUpdate - find the courier's latest offer for a cluster with a
// row lock. Concurrent accepts for the same cluster serialize here.
func (r *TxRepo) FindOfferForUpdate(ctx context.Context, clusterID, courierID string) (*domain.DeliveryOffer, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+offerColumns+`
        FROM delivery_offers o
        WHERE o.cluster_id = $1 AND o.courier_id = $2
        ORDER BY o.created_at DESC
        LIMIT 1
        FOR UPDATE
    `, clusterID, courierID)
	o, err := scanOffer(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find offer for cluster %q courier %q: %w", clusterID, courierID, err)
	}
	return o, nil
}

// ListPendingOffersByClusterForUpdate - lock and return every pending offer
// of a cluster, so sibling expiry commits atomically with the accept.
func (r *TxRepo) ListPendingOffersByClusterForUpdate(ctx context.Context, clusterID string) ([]domain.DeliveryOffer, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+offerColumns+`
        FROM delivery_offers o
        WHERE o.cluster_id = $1 AND o.status = 'pending'
        ORDER BY o.created_at ASC
        FOR UPDATE
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

// ListOpenOffersByDelivery - list every still-pending offer of a delivery.
func (r *TxRepo) ListOpenOffersByDelivery(ctx context.Context, deliveryID string) ([]domain.DeliveryOffer, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+offerColumns+`
        FROM delivery_offers o
        WHERE o.delivery_id = $1 AND o.status = 'pending'
        ORDER BY o.created_at ASC
        FOR UPDATE
    `, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list open offers for delivery %q: %w", deliveryID, err)
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

// GetCourier - read a courier inside the transaction.
func (r *TxRepo) GetCourier(ctx context.Context, id string) (*domain.Courier, error) {
	row := r.tx.QueryRow(ctx, `
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

func scanCourier(row rowScanner) (*domain.Courier, error) {
	var (
		c        domain.Courier
		lat, lng *float64
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.FullName, &c.Available, &c.Status, &lat, &lng); err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		c.Location = &domain.Point{Lat: *lat, Lng: *lng}
	}
	return &c, nil
}
