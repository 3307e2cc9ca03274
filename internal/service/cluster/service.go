// Package cluster manages delivery clusters: creation, manual assignment,
// tracking snapshots and the split-on-distance-violation algorithm that
// turns one overlong leg into a pickup leg plus a delivery leg.
package cluster

import (
	"context"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/ports/dispatchtx"
)

type counter interface {
	Inc()
}

// Service - the cluster manager.
type Service struct {
	runner   dispatchtx.Runner
	lister   clusterLister
	notifier notify.Notifier
	splits   counter
	logger   logx.Logger
	now      func() time.Time
}

// NewService creates a new cluster manager.
func NewService(runner dispatchtx.Runner, lister clusterLister, notifier notify.Notifier, splits counter, logger logx.Logger) *Service {
	return &Service{
		runner:   runner,
		lister:   lister,
		notifier: notifier,
		splits:   splits,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateParams describes a new cluster.
type CreateParams struct {
	DeliveryID    string
	VendorID      *string
	Pickup        *domain.Point
	Dropoff       domain.Point
	SequenceOrder int
}

// Create inserts a pending cluster for a delivery leg.
func (s *Service) Create(ctx context.Context, tx dispatchtx.Repository, p CreateParams) (*domain.DeliveryCluster, error) {
	if p.DeliveryID == "" || !p.Dropoff.Valid() {
		return nil, apperr.ErrInvalid
	}
	if p.Pickup != nil && !p.Pickup.Valid() {
		return nil, apperr.ErrInvalid
	}

	now := s.now()
	c := domain.DeliveryCluster{
		ID:            uuid.NewString(),
		DeliveryID:    p.DeliveryID,
		VendorID:      p.VendorID,
		Pickup:        p.Pickup,
		Dropoff:       p.Dropoff,
		Status:        domain.ClusterPending,
		SequenceOrder: p.SequenceOrder,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.Pickup != nil {
		c.DistanceKm = geo.DistanceKm(*p.Pickup, p.Dropoff)
	}
	if err := tx.InsertCluster(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// AssignDriver assigns a courier to a cluster by hand, bypassing the offer
// flow. Dispatcher-facing; runs in its own unit of work.
func (s *Service) AssignDriver(ctx context.Context, clusterID, courierID string) (*domain.DeliveryCluster, error) {
	var out *domain.DeliveryCluster
	err := s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := s.assignDriverTx(ctx, tx, clusterID, courierID)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) assignDriverTx(ctx context.Context, tx dispatchtx.Repository, clusterID, courierID string) (*domain.DeliveryCluster, error) {
	c, err := tx.GetClusterForUpdate(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	if c.Status.Terminal() || c.Assigned() {
		return nil, apperr.ErrInvalidState
	}

	courier, err := tx.GetCourier(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if courier == nil {
		return nil, apperr.ErrNotFound
	}

	now := s.now()
	c.CourierID = &courierID
	c.AssignedAt = &now
	c.Status = domain.ClusterAssigned
	c.UpdatedAt = now
	if err := tx.UpdateCluster(ctx, c); err != nil {
		return nil, err
	}

	// A manual assignment invalidates whatever the broadcast round still has
	// outstanding on this cluster.
	pending, err := tx.ListPendingOffersByClusterForUpdate(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		o := &pending[i]
		o.Status = domain.OfferExpired
		o.Active = false
		o.RespondedAt = &now
		if err := tx.UpdateOffer(ctx, o); err != nil {
			return nil, err
		}
	}

	payload := map[string]any{"cluster_id": c.ID, "courier_id": courierID}
	s.notifier.Notify(ctx, notify.Message{
		Recipient:  notify.User(courier.UserID),
		EventType:  notify.EventClusterAssigned,
		EntityID:   c.ID,
		EntityType: "delivery_cluster",
		Payload:    payload,
	})
	if c.VendorID != nil {
		s.notifier.Notify(ctx, notify.Message{
			Recipient:  notify.User(*c.VendorID),
			EventType:  notify.EventClusterAssigned,
			EntityID:   c.ID,
			EntityType: "delivery_cluster",
			Payload:    payload,
		})
	}
	s.notifier.Notify(ctx, notify.Message{
		Recipient:  notify.Role("admin"),
		EventType:  notify.EventClusterAssigned,
		EntityID:   c.ID,
		EntityType: "delivery_cluster",
		Payload:    payload,
	})

	s.logger.Info("courier assigned to cluster",
		logx.String("cluster_id", c.ID),
		logx.String("courier_id", courierID),
	)
	return c, nil
}

// UpdateTracking upserts the cluster's tracking snapshot in its own unit of
// work. The assigned courier is notified only when the status actually
// changed.
func (s *Service) UpdateTracking(ctx context.Context, clusterID, status string, location domain.Point) (*domain.DeliveryCluster, error) {
	if status == "" || !location.Valid() {
		return nil, apperr.ErrInvalid
	}

	var out *domain.DeliveryCluster
	err := s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.GetClusterForUpdate(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.ErrNotFound
		}

		changed := c.Tracking == nil || c.Tracking.Status != status
		now := s.now()
		c.Tracking = &domain.TrackingSnapshot{Status: status, Location: location, UpdatedAt: now}
		c.UpdatedAt = now
		if err := tx.UpdateCluster(ctx, c); err != nil {
			return err
		}

		if changed && c.Assigned() {
			if courier, err := tx.GetCourier(ctx, *c.CourierID); err == nil && courier != nil {
				s.notifier.Notify(ctx, notify.Message{
					Recipient:  notify.User(courier.UserID),
					EventType:  notify.EventTrackingUpdated,
					EntityID:   c.ID,
					EntityType: "delivery_cluster",
					Payload:    map[string]any{"status": status, "lat": location.Lat, "lng": location.Lng},
				})
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SplitResult names the two legs a split produced.
type SplitResult struct {
	PickupLeg   *domain.DeliveryCluster
	DeliveryLeg *domain.DeliveryCluster
}

// Split decomposes a cluster whose accepted courier is too far from pickup.
// A handover point is placed halfway between vendor and customer; the vendor
// half becomes a new unassigned pickup leg and the outbound half stays with
// the original courier. The original cluster is deleted.
func (s *Service) Split(ctx context.Context, tx dispatchtx.Repository, cluster *domain.DeliveryCluster, courier *domain.Courier) (*SplitResult, error) {
	if cluster.Pickup == nil || !cluster.Pickup.Valid() ||
		!cluster.Dropoff.Valid() ||
		courier.Location == nil || !courier.Location.Valid() {
		return nil, apperr.ErrPrecondition
	}

	handover := geo.Midpoint(*cluster.Pickup, cluster.Dropoff)
	now := s.now()

	// odd cent goes to the pickup leg so the halves always sum to the original
	deliveryPrice := cluster.Price / 2
	pickupPrice := cluster.Price - deliveryPrice

	pickupLeg := domain.DeliveryCluster{
		ID:            uuid.NewString(),
		DeliveryID:    cluster.DeliveryID,
		VendorID:      cluster.VendorID,
		Pickup:        cluster.Pickup,
		Dropoff:       handover,
		DistanceKm:    geo.DistanceKm(*cluster.Pickup, handover),
		Price:         pickupPrice,
		Status:        domain.ClusterPending,
		SequenceOrder: cluster.SequenceOrder,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	courierID := courier.ID
	deliveryLeg := domain.DeliveryCluster{
		ID:            uuid.NewString(),
		DeliveryID:    cluster.DeliveryID,
		Pickup:        &handover,
		Dropoff:       cluster.Dropoff,
		DistanceKm:    geo.DistanceKm(handover, cluster.Dropoff),
		Price:         deliveryPrice,
		Status:        domain.ClusterAssigned,
		CourierID:     &courierID,
		AssignedAt:    &now,
		SequenceOrder: cluster.SequenceOrder + 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := tx.InsertCluster(ctx, &pickupLeg); err != nil {
		return nil, err
	}
	if err := tx.InsertCluster(ctx, &deliveryLeg); err != nil {
		return nil, err
	}
	if err := tx.DeleteCluster(ctx, cluster.ID); err != nil {
		return nil, err
	}

	if s.splits != nil {
		s.splits.Inc()
	}
	s.notifier.Notify(ctx, notify.Message{
		Recipient:  notify.User(courier.UserID),
		EventType:  notify.EventClusterSplit,
		EntityID:   deliveryLeg.ID,
		EntityType: "delivery_cluster",
		Payload: map[string]any{
			"handover_lat":  handover.Lat,
			"handover_lng":  handover.Lng,
			"pickup_leg_id": pickupLeg.ID,
		},
	})

	s.logger.Info("cluster split into relay legs",
		logx.String("cluster_id", cluster.ID),
		logx.String("pickup_leg_id", pickupLeg.ID),
		logx.String("delivery_leg_id", deliveryLeg.ID),
		logx.Float64("handover_lat", handover.Lat),
		logx.Float64("handover_lng", handover.Lng),
	)
	return &SplitResult{PickupLeg: &pickupLeg, DeliveryLeg: &deliveryLeg}, nil
}

// GetUnassigned lists clusters without a courier, with their pending offers.
func (s *Service) GetUnassigned(ctx context.Context) ([]domain.UnassignedCluster, error) {
	return s.lister.ListUnassignedClusters(ctx)
}

// GetTracking returns the tracking snapshots of a delivery's clusters in
// sequence order.
func (s *Service) GetTracking(ctx context.Context, deliveryID string) ([]domain.DeliveryCluster, error) {
	clusters, err := s.lister.GetTracking(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if len(clusters) == 0 {
		return nil, apperr.ErrNotFound
	}
	return clusters, nil
}

// WithNow overrides the clock; for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}
