package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewOffersCreatedTotal returns a Prometheus counter for the number of delivery offers broadcast to couriers
func NewOffersCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_offers_created_total",
		Help: "Total number of delivery offers broadcast to couriers",
	})
}

// NewAcceptConflictsTotal returns a Prometheus counter for accept calls that lost the first-writer race
func NewAcceptConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_accept_conflicts_total",
		Help: "Total number of offer accepts rejected because the offer was already handled",
	})
}

// NewClusterSplitsTotal returns a Prometheus counter for distance-violation relay splits
func NewClusterSplitsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_cluster_splits_total",
		Help: "Total number of clusters split into relay legs on accept",
	})
}

// NewAssignRetriesTotal returns a Prometheus counter for decline-triggered reassignment attempts
func NewAssignRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_assign_retries_total",
		Help: "Total number of auto-assignment retries triggered by declined offers",
	})
}
