package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"service-dispatch/internal/domain"
)

const courierGeoKey = "dispatch:couriers"

// LocationStore keeps live courier positions in a Redis GEO set. It is the
// freshest location source; the couriers table only holds the last persisted
// fix. Couriers ping their position through the HTTP API.
type LocationStore struct {
	redis *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(rdb *redis.Client) *LocationStore {
	return &LocationStore{redis: rdb}
}

// Update upserts a courier's position.
func (s *LocationStore) Update(ctx context.Context, courierID string, p domain.Point) error {
	err := s.redis.GeoAdd(ctx, courierGeoKey, &redis.GeoLocation{
		Name:      courierID,
		Latitude:  p.Lat,
		Longitude: p.Lng,
	}).Err()
	if err != nil {
		return fmt.Errorf("update location for courier %q: %w", courierID, err)
	}
	return nil
}

// Remove drops a courier's position (used when a courier goes offline).
func (s *LocationStore) Remove(ctx context.Context, courierID string) error {
	if err := s.redis.ZRem(ctx, courierGeoKey, courierID).Err(); err != nil {
		return fmt.Errorf("remove location for courier %q: %w", courierID, err)
	}
	return nil
}

// Positions returns the current position of each listed courier. Couriers
// without a known position are omitted from the result.
func (s *LocationStore) Positions(ctx context.Context, courierIDs []string) (map[string]domain.Point, error) {
	if len(courierIDs) == 0 {
		return map[string]domain.Point{}, nil
	}

	positions, err := s.redis.GeoPos(ctx, courierGeoKey, courierIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("geo positions: %w", err)
	}

	out := make(map[string]domain.Point, len(courierIDs))
	for i, pos := range positions {
		if pos == nil {
			continue
		}
		out[courierIDs[i]] = domain.Point{Lat: pos.Latitude, Lng: pos.Longitude}
	}
	return out, nil
}
