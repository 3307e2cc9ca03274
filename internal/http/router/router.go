// Package router wires the chi router: base middleware, rate limiting,
// observability and the dispatch API routes.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-dispatch/internal/http/handlers"
	mw "service-dispatch/internal/http/middleware"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/logx"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Delivery  *handlers.DeliveryHandler
	Cluster   *handlers.ClusterHandler
	Courier   *handlers.CourierHandler
	RateLimit *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(mw.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/", d.Delivery.Create)
			r.Post("/{id}/cancel", d.Delivery.Cancel)
			r.Post("/{id}/complete", d.Delivery.Complete)
			r.Get("/{id}/tracking", d.Delivery.Tracking)
		})

		r.Route("/clusters", func(r chi.Router) {
			r.Get("/unassigned", d.Cluster.Unassigned)
			r.Post("/{id}/offer/accept", d.Cluster.AcceptOffer)
			r.Post("/{id}/offer/decline", d.Cluster.DeclineOffer)
			r.Post("/{id}/offer/cancel", d.Cluster.CancelOffer)
			r.Post("/{id}/assign", d.Cluster.AssignDriver)
			r.Post("/{id}/auto-assign", d.Cluster.AutoAssign)
			r.Put("/{id}/tracking", d.Cluster.UpdateTracking)
		})

		r.Route("/couriers", func(r chi.Router) {
			r.Get("/{id}", d.Courier.Get)
			r.Put("/{id}/location", d.Courier.UpdateLocation)
			r.Delete("/{id}/location", d.Courier.RemoveLocation)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
