package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

func TestClusterHandler_AcceptOffer_OK(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/offer/accept", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		acceptFn: func(ctx context.Context, clusterID, courierID string) (*domain.AssignResult, error) {
			require.Equal(t, "cl-1", clusterID)
			require.Equal(t, "c-7", courierID)
			return &domain.AssignResult{
				DeliveryID: "d-1",
				ClusterID:  "cl-1",
				CourierID:  "c-7",
			}, nil
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.AcceptOffer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `{
        "delivery_id": "d-1",
        "cluster_id": "cl-1",
        "courier_id": "c-7",
        "split": false
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestClusterHandler_AcceptOffer_Split(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/offer/accept", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		acceptFn: func(ctx context.Context, clusterID, courierID string) (*domain.AssignResult, error) {
			return &domain.AssignResult{
				DeliveryID:     "d-1",
				ClusterID:      "cl-out",
				CourierID:      "c-7",
				Split:          true,
				RelayClusterID: "cl-relay",
			}, nil
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.AcceptOffer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `{
        "delivery_id": "d-1",
        "cluster_id": "cl-out",
        "courier_id": "c-7",
        "split": true,
        "relay_cluster_id": "cl-relay"
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestClusterHandler_AcceptOffer_Conflict(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/offer/accept", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		acceptFn: func(ctx context.Context, clusterID, courierID string) (*domain.AssignResult, error) {
			return nil, apperr.ErrInvalidState
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.AcceptOffer(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "offer not valid or already handled"}`, rr.Body.String())
}

func TestClusterHandler_DeclineOffer_OK(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/offer/decline", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		declineFn: func(ctx context.Context, clusterID, courierID string) error {
			require.Equal(t, "cl-1", clusterID)
			require.Equal(t, "c-7", courierID)
			return nil
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.DeclineOffer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "declined"}`, rr.Body.String())
}

func TestClusterHandler_CancelOffer_Conflict(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/offer/cancel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		cancelFn: func(ctx context.Context, clusterID, courierID string) error {
			return apperr.ErrInvalidState
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.CancelOffer(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "offer not valid or already handled"}`, rr.Body.String())
}

func TestClusterHandler_AssignDriver_OK(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	courierID := "c-7"
	clusters := &stubClusterUsecase{
		assignFn: func(ctx context.Context, clusterID, cID string) (*domain.DeliveryCluster, error) {
			require.Equal(t, "cl-1", clusterID)
			require.Equal(t, "c-7", cID)
			return &domain.DeliveryCluster{
				ID:            "cl-1",
				DeliveryID:    "d-1",
				Dropoff:       domain.Point{Lat: 25.0, Lng: 121.5},
				Status:        domain.ClusterAssigned,
				CourierID:     &courierID,
				SequenceOrder: 1,
			}, nil
		},
	}

	h := NewClusterHandler(logx.Nop(), nil, clusters)
	h.AssignDriver(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `{
        "id": "cl-1",
        "delivery_id": "d-1",
        "dropoff": {"lat": 25.0, "lng": 121.5},
        "distance_km": 0,
        "price": 0,
        "status": "assigned",
        "courier_id": "c-7",
        "sequence_order": 1
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestClusterHandler_AssignDriver_AlreadyAssigned(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"c-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	clusters := &stubClusterUsecase{
		assignFn: func(ctx context.Context, clusterID, courierID string) (*domain.DeliveryCluster, error) {
			return nil, apperr.ErrInvalidState
		},
	}

	h := NewClusterHandler(logx.Nop(), nil, clusters)
	h.AssignDriver(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "cluster already assigned or closed"}`, rr.Body.String())
}

func TestClusterHandler_AutoAssign_Accepted(t *testing.T) {
	t.Parallel()

	body := `{"pickup":{"lat":25.04,"lng":121.51}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/auto-assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		autoFn: func(ctx context.Context, clusterID string, pickup *domain.Point) error {
			require.Equal(t, "cl-1", clusterID)
			require.NotNil(t, pickup)
			require.Equal(t, 25.04, pickup.Lat)
			require.Equal(t, 121.51, pickup.Lng)
			return nil
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.AutoAssign(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"status": "assignment requested"}`, rr.Body.String())
}

func TestClusterHandler_AutoAssign_NoOverride(t *testing.T) {
	t.Parallel()

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/auto-assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		autoFn: func(ctx context.Context, clusterID string, pickup *domain.Point) error {
			require.Nil(t, pickup)
			return nil
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.AutoAssign(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestClusterHandler_AutoAssign_NotPending(t *testing.T) {
	t.Parallel()

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clusters/cl-1/auto-assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		autoFn: func(ctx context.Context, clusterID string, pickup *domain.Point) error {
			return apperr.ErrInvalidState
		},
	}

	h := NewClusterHandler(logx.Nop(), uc, nil)
	h.AutoAssign(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "cluster not pending"}`, rr.Body.String())
}

func TestClusterHandler_UpdateTracking_OK(t *testing.T) {
	t.Parallel()

	body := `{"status":"picked_up","lat":25.04,"lng":121.52}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/clusters/cl-1/tracking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "cl-1")

	rr := httptest.NewRecorder()

	clusters := &stubClusterUsecase{
		trackingFn: func(ctx context.Context, clusterID, status string, location domain.Point) (*domain.DeliveryCluster, error) {
			require.Equal(t, "cl-1", clusterID)
			require.Equal(t, "picked_up", status)
			return &domain.DeliveryCluster{
				ID:            "cl-1",
				SequenceOrder: 1,
				Status:        domain.ClusterAssigned,
				Tracking:      &domain.TrackingSnapshot{Status: status, Location: location},
			}, nil
		},
	}

	h := NewClusterHandler(logx.Nop(), nil, clusters)
	h.UpdateTracking(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `{
        "cluster_id": "cl-1",
        "sequence_order": 1,
        "status": "picked_up",
        "location": {"lat": 25.04, "lng": 121.52},
        "updated_at": "0001-01-01T00:00:00Z"
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestClusterHandler_Unassigned_OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clusters/unassigned", nil)
	rr := httptest.NewRecorder()

	clusters := &stubClusterUsecase{
		unassignedFn: func(ctx context.Context) ([]domain.UnassignedCluster, error) {
			return []domain.UnassignedCluster{
				{
					Cluster: domain.DeliveryCluster{
						ID:            "cl-1",
						DeliveryID:    "d-1",
						Dropoff:       domain.Point{Lat: 25.0, Lng: 121.5},
						Status:        domain.ClusterPending,
						SequenceOrder: 1,
					},
					PendingOffers: []domain.DeliveryOffer{
						{ID: "of-1", CourierID: "c-1", OfferedPrice: 740, DistanceKm: 1.2},
					},
				},
			}, nil
		},
	}

	h := NewClusterHandler(logx.Nop(), nil, clusters)
	h.Unassigned(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `[
        {
            "cluster": {
                "id": "cl-1",
                "delivery_id": "d-1",
                "dropoff": {"lat": 25.0, "lng": 121.5},
                "distance_km": 0,
                "price": 0,
                "status": "pending",
                "sequence_order": 1
            },
            "pending_offers": [
                {
                    "id": "of-1",
                    "courier_id": "c-1",
                    "offered_price": 740,
                    "distance_km": 1.2,
                    "expiry_time": "0001-01-01T00:00:00Z"
                }
            ]
        }
    ]`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}
