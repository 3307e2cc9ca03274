package courierdir

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

type stubCouriers struct {
	getFn  func(context.Context, string) (*domain.Courier, error)
	findFn func(context.Context) ([]domain.Courier, error)
}

func (s *stubCouriers) Get(ctx context.Context, id string) (*domain.Courier, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}

func (s *stubCouriers) FindAvailable(ctx context.Context) ([]domain.Courier, error) {
	if s.findFn == nil {
		return nil, nil
	}
	return s.findFn(ctx)
}

type stubLocations struct {
	fn func(context.Context, []string) (map[string]domain.Point, error)
}

func (s *stubLocations) Positions(ctx context.Context, ids []string) (map[string]domain.Point, error) {
	if s.fn == nil {
		return map[string]domain.Point{}, nil
	}
	return s.fn(ctx, ids)
}

func ptr(p domain.Point) *domain.Point { return &p }

func TestFindAvailable_RequiresLiveLocation(t *testing.T) {
	t.Parallel()

	couriers := &stubCouriers{
		findFn: func(context.Context) ([]domain.Courier, error) {
			return []domain.Courier{
				{ID: "k1", Available: true, Status: domain.CourierActive},
				{ID: "k2", Available: true, Status: domain.CourierActive, Location: ptr(domain.Point{Lat: 1, Lng: 1})},
				{ID: "k3", Available: true, Status: domain.CourierActive},
			}, nil
		},
	}
	locations := &stubLocations{
		fn: func(_ context.Context, ids []string) (map[string]domain.Point, error) {
			require.Equal(t, []string{"k1", "k2", "k3"}, ids)
			return map[string]domain.Point{
				"k1": {Lat: 10, Lng: 20},
			}, nil
		},
	}

	dir := NewDirectory(couriers, locations, time.Second, logx.Nop())

	got, err := dir.FindAvailable(context.Background(), true)
	require.NoError(t, err)
	// Only k1 has a live position. k2's persisted fix is a display value
	// and does not make it offerable; k3 has no position at all.
	require.Len(t, got, 1)
	require.Equal(t, "k1", got[0].ID)
	require.Equal(t, domain.Point{Lat: 10, Lng: 20}, *got[0].Location)
}

func TestFindAvailable_WithoutLocationSkipsStore(t *testing.T) {
	t.Parallel()

	couriers := &stubCouriers{
		findFn: func(context.Context) ([]domain.Courier, error) {
			return []domain.Courier{{ID: "k1"}}, nil
		},
	}
	locations := &stubLocations{
		fn: func(context.Context, []string) (map[string]domain.Point, error) {
			t.Fatal("location store must not be queried")
			return nil, nil
		},
	}

	dir := NewDirectory(couriers, locations, time.Second, logx.Nop())

	got, err := dir.FindAvailable(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFindAvailable_LocationStoreDownFallsBack(t *testing.T) {
	t.Parallel()

	couriers := &stubCouriers{
		findFn: func(context.Context) ([]domain.Courier, error) {
			return []domain.Courier{
				{ID: "k1", Location: ptr(domain.Point{Lat: 5, Lng: 5})},
				{ID: "k2"},
			}, nil
		},
	}
	locations := &stubLocations{
		fn: func(context.Context, []string) (map[string]domain.Point, error) {
			return nil, errors.New("redis down")
		},
	}

	dir := NewDirectory(couriers, locations, time.Second, logx.Nop())

	got, err := dir.FindAvailable(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "k1", got[0].ID)
}

func TestFindAvailable_RepoError(t *testing.T) {
	t.Parallel()

	couriers := &stubCouriers{
		findFn: func(context.Context) ([]domain.Courier, error) {
			return nil, errors.New("db down")
		},
	}

	dir := NewDirectory(couriers, &stubLocations{}, time.Second, logx.Nop())

	got, err := dir.FindAvailable(context.Background(), true)
	require.Error(t, err)
	require.Nil(t, got)
}

func TestGet_OverlaysLiveLocation(t *testing.T) {
	t.Parallel()

	couriers := &stubCouriers{
		getFn: func(_ context.Context, id string) (*domain.Courier, error) {
			require.Equal(t, "k1", id)
			return &domain.Courier{ID: "k1", Location: ptr(domain.Point{Lat: 1, Lng: 1})}, nil
		},
	}
	locations := &stubLocations{
		fn: func(context.Context, []string) (map[string]domain.Point, error) {
			return map[string]domain.Point{"k1": {Lat: 9, Lng: 9}}, nil
		},
	}

	dir := NewDirectory(couriers, locations, time.Second, logx.Nop())

	c, err := dir.Get(context.Background(), "k1")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, domain.Point{Lat: 9, Lng: 9}, *c.Location)
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()

	dir := NewDirectory(&stubCouriers{}, &stubLocations{}, time.Second, logx.Nop())

	c, err := dir.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, c)
}
