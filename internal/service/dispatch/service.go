// Package dispatch orchestrates the delivery lifecycle: order intake,
// clustering by vendor, broadcast offer creation, accept/decline/cancel
// handling and the terminal transitions.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/cluster"
)

type counter interface {
	Inc()
}

// Config holds the dispatch tuning knobs.
type Config struct {
	// MaxDriverDistanceKm is the split/reject threshold between an accepting
	// courier and the pickup point.
	MaxDriverDistanceKm float64
	// MaxRetries bounds how many declines re-trigger auto-assignment.
	MaxRetries int
}

// Service - the dispatch orchestrator. Every mutating operation runs as one
// unit of work; offer, cluster and delivery transitions commit together.
type Service struct {
	runner        dispatchtx.Runner
	offers        offerLedger
	clusters      clusterManager
	directory     courierDirectory
	orders        orderFetcher
	notifier      notify.Notifier
	cfg           Config
	assignRetries counter
	logger        logx.Logger
	now           func() time.Time
}

// NewService creates a new dispatch orchestrator.
func NewService(
	runner dispatchtx.Runner,
	offers offerLedger,
	clusters clusterManager,
	directory courierDirectory,
	orders orderFetcher,
	notifier notify.Notifier,
	cfg Config,
	assignRetries counter,
	logger logx.Logger,
) *Service {
	return &Service{
		runner:        runner,
		offers:        offers,
		clusters:      clusters,
		directory:     directory,
		orders:        orders,
		notifier:      notifier,
		cfg:           cfg,
		assignRetries: assignRetries,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateDelivery loads the order, creates a delivery with one cluster per
// distinct vendor, then triggers best-effort auto-assignment per cluster.
// Assignment failure never fails the creation; stuck clusters stay pending.
func (s *Service) CreateDelivery(ctx context.Context, orderID string) (*domain.Delivery, error) {
	if orderID == "" {
		return nil, apperr.ErrInvalid
	}

	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order %q: %w", orderID, err)
	}
	if ord == nil {
		return nil, apperr.ErrNotFound
	}
	if ord.Dropoff == nil || !ord.Dropoff.Valid() {
		return nil, apperr.ErrPrecondition
	}

	now := s.now()
	d := &domain.Delivery{
		ID:             uuid.NewString(),
		OrderID:        orderID,
		CustomerID:     ord.CustomerID,
		Dropoff:        *ord.Dropoff,
		Status:         domain.DeliveryPending,
		TrackingNumber: newTrackingNumber(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var clusterIDs []string
	err = s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		existing, err := tx.GetDeliveryByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.ErrInvalidState
		}
		if err := tx.InsertDelivery(ctx, d); err != nil {
			return err
		}

		vendorIDs, vendorCoords := ord.Vendors()
		for i, vendorID := range vendorIDs {
			vid := vendorID
			c, err := s.clusters.Create(ctx, tx, cluster.CreateParams{
				DeliveryID:    d.ID,
				VendorID:      &vid,
				Pickup:        vendorCoords[vendorID],
				Dropoff:       d.Dropoff,
				SequenceOrder: i + 1,
			})
			if err != nil {
				return err
			}
			clusterIDs = append(clusterIDs, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, clusterID := range clusterIDs {
		if err := s.AutoAssign(ctx, clusterID, nil); err != nil {
			s.logger.Warn("auto-assign after delivery creation failed",
				logx.String("delivery_id", d.ID),
				logx.String("cluster_id", clusterID),
				logx.Err(err),
			)
		}
	}
	return d, nil
}

// AutoAssign creates offers for every available courier near the cluster's
// pickup point. Zero reachable couriers or an unresolvable pickup leaves the
// cluster pending; only infrastructure failures are returned.
func (s *Service) AutoAssign(ctx context.Context, clusterID string, pickupOverride *domain.Point) error {
	return s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.GetClusterForUpdate(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.ErrNotFound
		}
		if c.Status != domain.ClusterPending || c.Assigned() {
			return apperr.ErrInvalidState
		}
		return s.autoAssignTx(ctx, tx, c, pickupOverride)
	})
}

// autoAssignTx is the in-transaction assignment step shared by AutoAssign
// and the decline retry path.
func (s *Service) autoAssignTx(ctx context.Context, tx dispatchtx.Repository, c *domain.DeliveryCluster, pickupOverride *domain.Point) error {
	pickup := resolvePickup(c, pickupOverride)
	if pickup == nil {
		s.logger.Warn("auto-assign skipped: no pickup point resolvable",
			logx.String("cluster_id", c.ID),
		)
		return nil
	}

	couriers, err := s.directory.FindAvailable(ctx, true)
	if err != nil {
		return fmt.Errorf("find available couriers: %w", err)
	}
	if len(couriers) == 0 {
		s.logger.Warn("auto-assign skipped: no available couriers",
			logx.String("cluster_id", c.ID),
		)
		return nil
	}

	candidates := make([]domain.Candidate, 0, len(couriers))
	for _, courier := range couriers {
		candidates = append(candidates, domain.Candidate{
			CourierID:  courier.ID,
			DistanceKm: geo.DistanceKm(*courier.Location, *pickup),
		})
	}
	geo.SortByDistance(candidates, func(c domain.Candidate) float64 { return c.DistanceKm })

	// broadcast: every candidate gets an offer, first accept wins
	offers, err := s.offers.CreateOffers(ctx, tx, c, candidates)
	if err != nil {
		return err
	}
	s.logger.Info("offers broadcast for cluster",
		logx.String("cluster_id", c.ID),
		logx.Int("offers", len(offers)),
	)
	return nil
}

// resolvePickup picks the pickup point: explicit override, then the
// cluster's vendor coordinates, then the drop-off as a last resort.
func resolvePickup(c *domain.DeliveryCluster, override *domain.Point) *domain.Point {
	switch {
	case override != nil && override.Valid():
		return override
	case c.Pickup != nil && c.Pickup.Valid():
		return c.Pickup
	case c.Dropoff.Valid():
		return &c.Dropoff
	default:
		return nil
	}
}

// AcceptOffer accepts the courier's pending offer for the cluster, expires
// the sibling offers, and assigns the cluster and delivery. When the courier
// is farther from pickup than MaxDriverDistanceKm the cluster is split into
// relay legs and the vendor half is re-offered to the nearest courier.
func (s *Service) AcceptOffer(ctx context.Context, clusterID, courierID string) (*domain.AssignResult, error) {
	var result *domain.AssignResult
	err := s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.GetClusterForUpdate(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.ErrNotFound
		}
		// A stale pending offer must not override a cluster someone else
		// already holds, e.g. after a manual dispatcher assignment.
		if c.Status.Terminal() || c.Assigned() {
			return apperr.ErrInvalidState
		}

		o, err := tx.FindOfferForUpdate(ctx, clusterID, courierID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrInvalidState
		}
		if _, err := s.offers.Accept(ctx, tx, o.ID, courierID); err != nil {
			return err
		}

		d, err := tx.GetDelivery(ctx, c.DeliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}

		courier, err := s.directory.Get(ctx, courierID)
		if err != nil {
			return err
		}
		if courier == nil {
			return apperr.ErrNotFound
		}

		result = &domain.AssignResult{
			DeliveryID: d.ID,
			ClusterID:  c.ID,
			CourierID:  courierID,
		}
		now := s.now()

		if s.tooFarFromPickup(c, courier) {
			split, err := s.clusters.Split(ctx, tx, c, courier)
			if err != nil {
				return err
			}
			result.Split = true
			result.ClusterID = split.DeliveryLeg.ID
			result.RelayClusterID = split.PickupLeg.ID
			if err := s.autoAssignTx(ctx, tx, split.PickupLeg, nil); err != nil {
				return err
			}
		} else {
			c.CourierID = &courierID
			c.AssignedAt = &now
			c.Status = domain.ClusterAssigned
			c.UpdatedAt = now
			if err := tx.UpdateCluster(ctx, c); err != nil {
				return err
			}
		}

		d.CourierID = &courierID
		d.Status = domain.DeliveryAssigned
		d.UpdatedAt = now
		if err := tx.UpdateDelivery(ctx, d); err != nil {
			return err
		}

		payload := map[string]any{
			"delivery_id": d.ID,
			"cluster_id":  result.ClusterID,
			"courier_id":  courierID,
			"split":       result.Split,
		}
		s.notifier.Notify(ctx, notify.Message{
			Recipient:  notify.User(d.CustomerID),
			EventType:  notify.EventDeliveryAssigned,
			EntityID:   d.ID,
			EntityType: "delivery",
			Payload:    payload,
		})
		if c.VendorID != nil {
			s.notifier.Notify(ctx, notify.Message{
				Recipient:  notify.User(*c.VendorID),
				EventType:  notify.EventDeliveryAssigned,
				EntityID:   d.ID,
				EntityType: "delivery",
				Payload:    payload,
			})
		}

		s.logger.Info("offer accepted for cluster",
			logx.String("delivery_id", d.ID),
			logx.String("cluster_id", clusterID),
			logx.String("courier_id", courierID),
			logx.Any("split", result.Split),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) tooFarFromPickup(c *domain.DeliveryCluster, courier *domain.Courier) bool {
	if c.Pickup == nil || !c.Pickup.Valid() || courier.Location == nil {
		return false
	}
	return geo.DistanceKm(*courier.Location, *c.Pickup) > s.cfg.MaxDriverDistanceKm
}

// DeclineOffer declines the courier's offer, reopens the cluster, bumps the
// delivery's retry count and re-runs auto-assignment while the bound allows.
func (s *Service) DeclineOffer(ctx context.Context, clusterID, courierID string) error {
	return s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.GetClusterForUpdate(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.ErrNotFound
		}

		o, err := tx.FindOfferForUpdate(ctx, clusterID, courierID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrInvalidState
		}
		if _, err := s.offers.Decline(ctx, tx, o.ID, courierID); err != nil {
			return err
		}

		now := s.now()
		c.CourierID = nil
		c.AssignedAt = nil
		c.Status = domain.ClusterPending
		c.UpdatedAt = now
		if err := tx.UpdateCluster(ctx, c); err != nil {
			return err
		}

		d, err := tx.GetDelivery(ctx, c.DeliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		d.CourierID = nil
		// RetryCount never passes MaxRetries; the last allowed retry still
		// fires one more auto-assign round.
		retry := d.RetryCount < s.cfg.MaxRetries
		if retry {
			d.RetryCount++
		}
		d.UpdatedAt = now
		if err := tx.UpdateDelivery(ctx, d); err != nil {
			return err
		}

		s.notifier.Notify(ctx, notify.Message{
			Recipient:  notify.Role("admin"),
			EventType:  notify.EventOfferDeclined,
			EntityID:   o.ID,
			EntityType: "delivery_offer",
			Payload:    map[string]any{"cluster_id": c.ID, "courier_id": courierID, "retry_count": d.RetryCount},
		})

		if !retry {
			s.logger.Warn("retry bound reached, cluster left for dispatcher",
				logx.String("delivery_id", d.ID),
				logx.String("cluster_id", c.ID),
				logx.Int("retry_count", d.RetryCount),
			)
			return nil
		}

		if s.assignRetries != nil {
			s.assignRetries.Inc()
		}
		return s.autoAssignTx(ctx, tx, c, nil)
	})
}

// CancelOffer backs a courier out of an already-accepted offer and reopens
// the cluster and delivery for reassignment.
func (s *Service) CancelOffer(ctx context.Context, clusterID, courierID string) error {
	return s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.GetClusterForUpdate(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.ErrNotFound
		}

		o, err := tx.FindOfferForUpdate(ctx, clusterID, courierID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrInvalidState
		}
		if _, err := s.offers.CancelAccepted(ctx, tx, o.ID, courierID); err != nil {
			return err
		}

		now := s.now()
		c.CourierID = nil
		c.AssignedAt = nil
		c.Status = domain.ClusterPending
		c.UpdatedAt = now
		if err := tx.UpdateCluster(ctx, c); err != nil {
			return err
		}

		d, err := tx.GetDelivery(ctx, c.DeliveryID)
		if err != nil {
			return err
		}
		if d != nil && !d.Status.Terminal() {
			d.CourierID = nil
			d.Status = domain.DeliveryPending
			d.UpdatedAt = now
			if err := tx.UpdateDelivery(ctx, d); err != nil {
				return err
			}
		}

		s.notifier.Notify(ctx, notify.Message{
			Recipient:  notify.Role("admin"),
			EventType:  notify.EventOfferCanceled,
			EntityID:   o.ID,
			EntityType: "delivery_offer",
			Payload:    map[string]any{"cluster_id": c.ID, "courier_id": courierID},
		})
		return nil
	})
}

// CancelDelivery cancels a non-terminal delivery, cascades cancellation to
// its clusters and expires every open offer.
func (s *Service) CancelDelivery(ctx context.Context, deliveryID string) error {
	return s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status.Terminal() {
			return apperr.ErrInvalidState
		}

		now := s.now()
		d.Status = domain.DeliveryCancelled
		d.UpdatedAt = now
		if err := tx.UpdateDelivery(ctx, d); err != nil {
			return err
		}

		clusters, err := tx.ListClustersByDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		for i := range clusters {
			c := &clusters[i]
			if c.Status.Terminal() {
				continue
			}
			c.Status = domain.ClusterCancelled
			c.UpdatedAt = now
			if err := tx.UpdateCluster(ctx, c); err != nil {
				return err
			}
			if c.Assigned() {
				s.notifyCourier(ctx, tx, *c.CourierID, notify.Message{
					EventType:  notify.EventDeliveryCancelled,
					EntityID:   d.ID,
					EntityType: "delivery",
					Payload:    map[string]any{"cluster_id": c.ID},
				})
			}
		}

		if err := s.offers.ExpireOpenOffers(ctx, tx, deliveryID); err != nil {
			return err
		}

		s.notifier.Notify(ctx, notify.Message{
			Recipient:  notify.User(d.CustomerID),
			EventType:  notify.EventDeliveryCancelled,
			EntityID:   d.ID,
			EntityType: "delivery",
		})
		s.logger.Info("delivery cancelled", logx.String("delivery_id", d.ID))
		return nil
	})
}

// CompleteDelivery marks the delivery delivered by its assigned courier,
// completes its clusters and closes out any leftover open offers.
func (s *Service) CompleteDelivery(ctx context.Context, deliveryID, courierID string) error {
	return s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status.Terminal() {
			return apperr.ErrInvalidState
		}
		if d.CourierID == nil || *d.CourierID != courierID {
			return apperr.ErrInvalidState
		}

		now := s.now()
		d.Status = domain.DeliveryDelivered
		d.DeliveredAt = &now
		d.UpdatedAt = now
		if err := tx.UpdateDelivery(ctx, d); err != nil {
			return err
		}

		clusters, err := tx.ListClustersByDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		for i := range clusters {
			c := &clusters[i]
			if c.Status.Terminal() {
				continue
			}
			c.Status = domain.ClusterCompleted
			c.UpdatedAt = now
			if err := tx.UpdateCluster(ctx, c); err != nil {
				return err
			}
		}

		if err := s.offers.AcceptOpenOffers(ctx, tx, deliveryID); err != nil {
			return err
		}

		s.notifier.Notify(ctx, notify.Message{
			Recipient:  notify.User(d.CustomerID),
			EventType:  notify.EventDeliveryCompleted,
			EntityID:   d.ID,
			EntityType: "delivery",
			Payload:    map[string]any{"delivered_at": now},
		})
		s.logger.Info("delivery completed",
			logx.String("delivery_id", d.ID),
			logx.String("courier_id", courierID),
		)
		return nil
	})
}

func (s *Service) notifyCourier(ctx context.Context, tx dispatchtx.Repository, courierID string, msg notify.Message) {
	c, err := tx.GetCourier(ctx, courierID)
	if err != nil || c == nil {
		s.logger.Warn("courier notification skipped",
			logx.String("courier_id", courierID),
			logx.Err(err),
		)
		return
	}
	msg.Recipient = notify.User(c.UserID)
	s.notifier.Notify(ctx, msg)
}

// WithNow overrides the clock; for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

func newTrackingNumber() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
