// Package offer is the offer ledger: creation of offer batches and the
// pending → accepted/declined/expired/canceled transitions, including the
// atomic sibling expiry that keeps one winner per cluster.
package offer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/ports/dispatchtx"
)

type counter interface {
	Inc()
}

// Service - the offer ledger. Every mutating method takes the caller's unit
// of work so that offer transitions commit together with the cluster and
// delivery mutations around them.
type Service struct {
	pricing         PriceSchedule
	notifier        notify.Notifier
	expiry          time.Duration
	offersCreated   counter
	acceptConflicts counter
	logger          logx.Logger
	now             func() time.Time
}

// NewService creates a new offer ledger.
func NewService(pricing PriceSchedule, notifier notify.Notifier, expiry time.Duration, offersCreated, acceptConflicts counter, logger logx.Logger) *Service {
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}
	return &Service{
		pricing:         pricing,
		notifier:        notifier,
		expiry:          expiry,
		offersCreated:   offersCreated,
		acceptConflicts: acceptConflicts,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// CreateOffers creates one pending offer per candidate and notifies each
// candidate courier with its distance. Offers are broadcast to every
// candidate at once; ranking only matters for dashboards.
func (s *Service) CreateOffers(ctx context.Context, tx dispatchtx.Repository, cluster *domain.DeliveryCluster, candidates []domain.Candidate) ([]domain.DeliveryOffer, error) {
	now := s.now()
	offers := make([]domain.DeliveryOffer, 0, len(candidates))

	for _, cand := range candidates {
		o := domain.DeliveryOffer{
			ID:           uuid.NewString(),
			DeliveryID:   cluster.DeliveryID,
			ClusterID:    cluster.ID,
			CourierID:    cand.CourierID,
			Status:       domain.OfferPending,
			OfferedPrice: s.pricing.OfferPrice(cand.DistanceKm),
			DistanceKm:   cand.DistanceKm,
			Active:       true,
			CreatedAt:    now,
			ExpiryTime:   now.Add(s.expiry),
		}
		if err := tx.InsertOffer(ctx, &o); err != nil {
			return nil, err
		}
		offers = append(offers, o)

		s.notifyCourier(ctx, tx, cand.CourierID, notify.Message{
			EventType:  notify.EventOfferCreated,
			EntityID:   o.ID,
			EntityType: "delivery_offer",
			Payload: map[string]any{
				"cluster_id":    cluster.ID,
				"distance_km":   cand.DistanceKm,
				"offered_price": o.OfferedPrice,
				"expiry_time":   o.ExpiryTime,
			},
		})
	}

	if s.offersCreated != nil {
		for range offers {
			s.offersCreated.Inc()
		}
	}
	return offers, nil
}

// Accept marks the courier's offer accepted and expires every other pending
// offer of the same cluster in the same unit of work. Exactly one concurrent
// accept can observe the offer as still pending; later callers get
// ErrInvalidState.
func (s *Service) Accept(ctx context.Context, tx dispatchtx.Repository, offerID, courierID string) (*domain.DeliveryOffer, error) {
	o, err := tx.GetOfferForUpdate(ctx, offerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if o == nil || o.CourierID != courierID || !o.Open(now) {
		if s.acceptConflicts != nil {
			s.acceptConflicts.Inc()
		}
		return nil, apperr.ErrInvalidState
	}

	o.Status = domain.OfferAccepted
	o.Active = false
	o.RespondedAt = &now
	if err := tx.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}

	if err := s.expireSiblings(ctx, tx, o.ClusterID, o.ID, now); err != nil {
		return nil, err
	}

	s.logger.Info("offer accepted",
		logx.String("offer_id", o.ID),
		logx.String("cluster_id", o.ClusterID),
		logx.String("courier_id", courierID),
	)
	return o, nil
}

func (s *Service) expireSiblings(ctx context.Context, tx dispatchtx.Repository, clusterID, winnerID string, now time.Time) error {
	siblings, err := tx.ListPendingOffersByClusterForUpdate(ctx, clusterID)
	if err != nil {
		return err
	}
	for i := range siblings {
		sib := &siblings[i]
		if sib.ID == winnerID {
			continue
		}
		sib.Status = domain.OfferExpired
		sib.Active = false
		sib.RespondedAt = &now
		if err := tx.UpdateOffer(ctx, sib); err != nil {
			return err
		}
		s.notifyCourier(ctx, tx, sib.CourierID, notify.Message{
			EventType:  notify.EventOfferExpired,
			EntityID:   sib.ID,
			EntityType: "delivery_offer",
			Payload:    map[string]any{"cluster_id": clusterID},
		})
	}
	return nil
}

// Decline marks the courier's offer declined. The orchestrator owns the
// retry that usually follows.
func (s *Service) Decline(ctx context.Context, tx dispatchtx.Repository, offerID, courierID string) (*domain.DeliveryOffer, error) {
	o, err := tx.GetOfferForUpdate(ctx, offerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if o == nil || o.CourierID != courierID || !o.Open(now) {
		return nil, apperr.ErrInvalidState
	}

	o.Status = domain.OfferDeclined
	o.Active = false
	o.RespondedAt = &now
	if err := tx.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("offer declined",
		logx.String("offer_id", o.ID),
		logx.String("cluster_id", o.ClusterID),
		logx.String("courier_id", courierID),
	)
	return o, nil
}

// CancelAccepted backs a courier out of an offer it had accepted; only valid
// from the accepted state. The orchestrator reopens the cluster.
func (s *Service) CancelAccepted(ctx context.Context, tx dispatchtx.Repository, offerID, courierID string) (*domain.DeliveryOffer, error) {
	o, err := tx.GetOfferForUpdate(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CourierID != courierID || o.Status != domain.OfferAccepted {
		return nil, apperr.ErrInvalidState
	}

	now := s.now()
	o.Status = domain.OfferCanceled
	o.Active = false
	o.RespondedAt = &now
	if err := tx.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("accepted offer canceled",
		logx.String("offer_id", o.ID),
		logx.String("cluster_id", o.ClusterID),
		logx.String("courier_id", courierID),
	)
	return o, nil
}

// ExpireOpenOffers expires every still-pending offer of a delivery, e.g. on
// delivery cancellation.
func (s *Service) ExpireOpenOffers(ctx context.Context, tx dispatchtx.Repository, deliveryID string) error {
	offers, err := tx.ListOpenOffersByDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}
	now := s.now()
	for i := range offers {
		o := &offers[i]
		o.Status = domain.OfferExpired
		o.Active = false
		o.RespondedAt = &now
		if err := tx.UpdateOffer(ctx, o); err != nil {
			return err
		}
		s.notifyCourier(ctx, tx, o.CourierID, notify.Message{
			EventType:  notify.EventOfferExpired,
			EntityID:   o.ID,
			EntityType: "delivery_offer",
			Payload:    map[string]any{"cluster_id": o.ClusterID},
		})
	}
	return nil
}

// AcceptOpenOffers closes the still-pending offers of a delivery on
// completion. At most one offer per cluster ends up accepted; the rest
// expire. Clusters that went through the accept flow have no open offers
// left here, sibling expiry already closed them.
func (s *Service) AcceptOpenOffers(ctx context.Context, tx dispatchtx.Repository, deliveryID string) error {
	offers, err := tx.ListOpenOffersByDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}
	now := s.now()
	closed := make(map[string]bool)
	for i := range offers {
		o := &offers[i]
		if closed[o.ClusterID] {
			o.Status = domain.OfferExpired
		} else {
			o.Status = domain.OfferAccepted
			closed[o.ClusterID] = true
		}
		o.Active = false
		o.RespondedAt = &now
		if err := tx.UpdateOffer(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

// notifyCourier resolves the courier's user once and sends. Notification is
// fire-and-forget: a missing courier row only skips the send.
func (s *Service) notifyCourier(ctx context.Context, tx dispatchtx.Repository, courierID string, msg notify.Message) {
	c, err := tx.GetCourier(ctx, courierID)
	if err != nil || c == nil {
		s.logger.Warn("offer notification skipped: courier not resolvable",
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
