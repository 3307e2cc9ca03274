package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

type stubLocationWriter struct {
	updateFn func(ctx context.Context, courierID string, p domain.Point) error
	removeFn func(ctx context.Context, courierID string) error
}

func (s *stubLocationWriter) Update(ctx context.Context, courierID string, p domain.Point) error {
	if s.updateFn == nil {
		panic("Update not expected in this test")
	}
	return s.updateFn(ctx, courierID, p)
}

func (s *stubLocationWriter) Remove(ctx context.Context, courierID string) error {
	if s.removeFn == nil {
		panic("Remove not expected in this test")
	}
	return s.removeFn(ctx, courierID)
}

type stubCourierReader struct {
	getFn func(ctx context.Context, id string) (*domain.Courier, error)
}

func (s *stubCourierReader) Get(ctx context.Context, id string) (*domain.Courier, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func TestCourierHandler_Get_OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/couriers/c-1", nil)
	req = withURLParam(req, "id", "c-1")

	rr := httptest.NewRecorder()

	reader := &stubCourierReader{
		getFn: func(ctx context.Context, id string) (*domain.Courier, error) {
			require.Equal(t, "c-1", id)
			return &domain.Courier{
				ID:        "c-1",
				UserID:    "u-1",
				FullName:  "Ivan Petrov",
				Available: true,
				Status:    domain.CourierActive,
				Location:  &domain.Point{Lat: 25.04, Lng: 121.52},
			}, nil
		},
	}

	h := NewCourierHandler(logx.Nop(), nil, reader)
	h.Get(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"id": "c-1",
		"full_name": "Ivan Petrov",
		"available": true,
		"status": "active",
		"location": {"lat": 25.04, "lng": 121.52}
	}`, rr.Body.String())
}

func TestCourierHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/couriers/absent", nil)
	req = withURLParam(req, "id", "absent")

	rr := httptest.NewRecorder()

	reader := &stubCourierReader{
		getFn: func(ctx context.Context, id string) (*domain.Courier, error) {
			return nil, nil
		},
	}

	h := NewCourierHandler(logx.Nop(), nil, reader)
	h.Get(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "courier not found"}`, rr.Body.String())
}

func TestCourierHandler_UpdateLocation_OK(t *testing.T) {
	t.Parallel()

	body := `{"lat":25.04,"lng":121.52}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/couriers/c-1/location", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "c-1")

	rr := httptest.NewRecorder()

	store := &stubLocationWriter{
		updateFn: func(ctx context.Context, courierID string, p domain.Point) error {
			require.Equal(t, "c-1", courierID)
			require.Equal(t, 25.04, p.Lat)
			require.Equal(t, 121.52, p.Lng)
			return nil
		},
	}

	h := NewCourierHandler(logx.Nop(), store, nil)
	h.UpdateLocation(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCourierHandler_UpdateLocation_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	body := `{"lat":95.0,"lng":121.52}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/couriers/c-1/location", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "c-1")

	rr := httptest.NewRecorder()

	store := &stubLocationWriter{
		updateFn: func(ctx context.Context, courierID string, p domain.Point) error {
			require.FailNow(t, "store.Update must not be called on invalid coordinates")
			return nil
		},
	}

	h := NewCourierHandler(logx.Nop(), store, nil)
	h.UpdateLocation(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid coordinates"}`, rr.Body.String())
}

func TestCourierHandler_UpdateLocation_StoreError(t *testing.T) {
	t.Parallel()

	body := `{"lat":25.04,"lng":121.52}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/couriers/c-1/location", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "c-1")

	rr := httptest.NewRecorder()

	store := &stubLocationWriter{
		updateFn: func(ctx context.Context, courierID string, p domain.Point) error {
			return errors.New("redis down")
		},
	}

	h := NewCourierHandler(logx.Nop(), store, nil)
	h.UpdateLocation(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCourierHandler_RemoveLocation_OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/couriers/c-1/location", nil)
	req = withURLParam(req, "id", "c-1")

	rr := httptest.NewRecorder()

	store := &stubLocationWriter{
		removeFn: func(ctx context.Context, courierID string) error {
			require.Equal(t, "c-1", courierID)
			return nil
		},
	}

	h := NewCourierHandler(logx.Nop(), store, nil)
	h.RemoveLocation(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
