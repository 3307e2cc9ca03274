package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
	OffersCreatedTotal     prometheus.Counter `name:"dispatch_offers_created_total"`
	AcceptConflictsTotal   prometheus.Counter `name:"dispatch_accept_conflicts_total"`
	ClusterSplitsTotal     prometheus.Counter `name:"dispatch_cluster_splits_total"`
	AssignRetriesTotal     prometheus.Counter `name:"dispatch_assign_retries_total"`
}

// provideMetrics registers the service counters on the default registerer.
// Re-registration (e.g. a rebuilt container in one process) reuses the
// existing collector instead of failing.
func provideMetrics() (metricsOut, error) {
	var out metricsOut
	for _, m := range []struct {
		name string
		make func() prometheus.Counter
		dst  *prometheus.Counter
	}{
		{"rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal, &out.RateLimitExceededTotal},
		{"gateway_retries_total", metrics.NewGatewayRetriesTotal, &out.GatewayRetriesTotal},
		{"dispatch_offers_created_total", metrics.NewOffersCreatedTotal, &out.OffersCreatedTotal},
		{"dispatch_accept_conflicts_total", metrics.NewAcceptConflictsTotal, &out.AcceptConflictsTotal},
		{"dispatch_cluster_splits_total", metrics.NewClusterSplitsTotal, &out.ClusterSplitsTotal},
		{"dispatch_assign_retries_total", metrics.NewAssignRetriesTotal, &out.AssignRetriesTotal},
	} {
		c, err := registerCounter(m.name, m.make)
		if err != nil {
			return metricsOut{}, err
		}
		*m.dst = c
	}
	return out, nil
}

func registerCounter(name string, make func() prometheus.Counter) (prometheus.Counter, error) {
	c := make()
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
