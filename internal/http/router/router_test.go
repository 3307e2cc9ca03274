package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
)

func newTestRouter() http.Handler {
	log := logx.Nop()
	return router.New(router.Deps{
		Logger:   log,
		Base:     handlers.New(log),
		Delivery: handlers.NewDeliveryHandler(log, nil, nil),
		Cluster:  handlers.NewClusterHandler(log, nil, nil),
		Courier:  handlers.NewCourierHandler(log, nil, nil),
	})
}

func TestNew_PingRoute(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message": "pong"}`, rec.Body.String())
}

func TestNew_HealthcheckHead(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodHead, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNew_UnknownRouteReturnsJSON404(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error": "route not found"}`, rec.Body.String())
}

func TestNew_MetricsRoute(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
