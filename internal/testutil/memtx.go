package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// MemStore is an in-memory dispatchtx.Runner. WithTx serializes callers on a
// single mutex, which models row locking closely enough for the service
// tests: concurrent transactions observe each other's committed state, never
// an intermediate one. Rollback restores a snapshot taken at tx start.
type MemStore struct {
	mu         sync.Mutex
	Deliveries map[string]domain.Delivery
	Clusters   map[string]domain.DeliveryCluster
	Offers     map[string]domain.DeliveryOffer
	Couriers   map[string]domain.Courier
}

func NewMemStore() *MemStore {
	return &MemStore{
		Deliveries: map[string]domain.Delivery{},
		Clusters:   map[string]domain.DeliveryCluster{},
		Offers:     map[string]domain.DeliveryOffer{},
		Couriers:   map[string]domain.Courier{},
	}
}

// WithTx runs fn under the store lock. A non-nil error from fn rolls the
// store back to its pre-tx snapshot.
func (s *MemStore) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&memTx{store: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	deliveries map[string]domain.Delivery
	clusters   map[string]domain.DeliveryCluster
	offers     map[string]domain.DeliveryOffer
}

func (s *MemStore) snapshot() memSnapshot {
	return memSnapshot{
		deliveries: cloneMap(s.Deliveries),
		clusters:   cloneMap(s.Clusters),
		offers:     cloneMap(s.Offers),
	}
}

func (s *MemStore) restore(snap memSnapshot) {
	s.Deliveries = snap.deliveries
	s.Clusters = snap.clusters
	s.Offers = snap.offers
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SeedCourier adds a courier row.
func (s *MemStore) SeedCourier(c domain.Courier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Couriers[c.ID] = c
}

// Delivery returns a copy of the stored delivery, or nil.
func (s *MemStore) Delivery(id string) *domain.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.Deliveries[id]; ok {
		return &d
	}
	return nil
}

// Cluster returns a copy of the stored cluster, or nil.
func (s *MemStore) Cluster(id string) *domain.DeliveryCluster {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.Clusters[id]; ok {
		return &c
	}
	return nil
}

// Offer returns a copy of the stored offer, or nil.
func (s *MemStore) Offer(id string) *domain.DeliveryOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Offers[id]; ok {
		return &o
	}
	return nil
}

// OffersByStatus returns all offers in the given status, ordered by creation.
func (s *MemStore) OffersByStatus(status domain.OfferStatus) []domain.DeliveryOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DeliveryOffer
	for _, o := range s.Offers {
		if o.Status == status {
			out = append(out, o)
		}
	}
	sortOffers(out)
	return out
}

// AllClusters returns every cluster ordered by sequence order then id.
func (s *MemStore) AllClusters() []domain.DeliveryCluster {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DeliveryCluster, 0, len(s.Clusters))
	for _, c := range s.Clusters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SequenceOrder != out[j].SequenceOrder {
			return out[i].SequenceOrder < out[j].SequenceOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortOffers(offers []domain.DeliveryOffer) {
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].CreatedAt.Before(offers[j].CreatedAt)
		}
		return offers[i].ID < offers[j].ID
	})
}

// memTx implements dispatchtx.Repository directly over the store maps; the
// store lock is already held for the whole transaction.
type memTx struct {
	store *MemStore
}

func (t *memTx) GetDelivery(_ context.Context, id string) (*domain.Delivery, error) {
	if d, ok := t.store.Deliveries[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (t *memTx) GetDeliveryByOrderID(_ context.Context, orderID string) (*domain.Delivery, error) {
	for _, d := range t.store.Deliveries {
		if d.OrderID == orderID {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (t *memTx) InsertDelivery(_ context.Context, d *domain.Delivery) error {
	t.store.Deliveries[d.ID] = *d
	return nil
}

func (t *memTx) UpdateDelivery(_ context.Context, d *domain.Delivery) error {
	t.store.Deliveries[d.ID] = *d
	return nil
}

func (t *memTx) GetCluster(_ context.Context, id string) (*domain.DeliveryCluster, error) {
	if c, ok := t.store.Clusters[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (t *memTx) GetClusterForUpdate(ctx context.Context, id string) (*domain.DeliveryCluster, error) {
	return t.GetCluster(ctx, id)
}

func (t *memTx) InsertCluster(_ context.Context, c *domain.DeliveryCluster) error {
	t.store.Clusters[c.ID] = *c
	return nil
}

func (t *memTx) UpdateCluster(_ context.Context, c *domain.DeliveryCluster) error {
	t.store.Clusters[c.ID] = *c
	return nil
}

func (t *memTx) DeleteCluster(_ context.Context, id string) error {
	delete(t.store.Clusters, id)
	return nil
}

func (t *memTx) ListClustersByDelivery(_ context.Context, deliveryID string) ([]domain.DeliveryCluster, error) {
	var out []domain.DeliveryCluster
	for _, c := range t.store.Clusters {
		if c.DeliveryID == deliveryID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SequenceOrder != out[j].SequenceOrder {
			return out[i].SequenceOrder < out[j].SequenceOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (t *memTx) InsertOffer(_ context.Context, o *domain.DeliveryOffer) error {
	t.store.Offers[o.ID] = *o
	return nil
}

func (t *memTx) UpdateOffer(_ context.Context, o *domain.DeliveryOffer) error {
	t.store.Offers[o.ID] = *o
	return nil
}

func (t *memTx) GetOfferForUpdate(_ context.Context, id string) (*domain.DeliveryOffer, error) {
	if o, ok := t.store.Offers[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (t *memTx) FindOfferForUpdate(_ context.Context, clusterID, courierID string) (*domain.DeliveryOffer, error) {
	var match *domain.DeliveryOffer
	for _, o := range t.store.Offers {
		if o.ClusterID != clusterID || o.CourierID != courierID {
			continue
		}
		cp := o
		if match == nil || cp.CreatedAt.After(match.CreatedAt) {
			match = &cp
		}
	}
	return match, nil
}

func (t *memTx) ListPendingOffersByClusterForUpdate(_ context.Context, clusterID string) ([]domain.DeliveryOffer, error) {
	var out []domain.DeliveryOffer
	for _, o := range t.store.Offers {
		if o.ClusterID == clusterID && o.Status == domain.OfferPending {
			out = append(out, o)
		}
	}
	sortOffers(out)
	return out, nil
}

func (t *memTx) ListOpenOffersByDelivery(_ context.Context, deliveryID string) ([]domain.DeliveryOffer, error) {
	now := time.Now().UTC()
	var out []domain.DeliveryOffer
	for _, o := range t.store.Offers {
		if o.DeliveryID == deliveryID && o.Open(now) {
			out = append(out, o)
		}
	}
	sortOffers(out)
	return out, nil
}

func (t *memTx) GetCourier(_ context.Context, id string) (*domain.Courier, error) {
	if c, ok := t.store.Couriers[id]; ok {
		return &c, nil
	}
	return nil, nil
}
