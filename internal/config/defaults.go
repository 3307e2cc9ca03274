package config

import "time"

const defaultPort = 8080

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "dispatch",
	Pass: "dispatch",
	Name: "dispatch_db",
}

var defaultRedis = Redis{
	Addr: "127.0.0.1:6379",
	DB:   0,
}

var defaultKafka = Kafka{
	Brokers:     nil,
	GroupID:     "service-dispatch",
	OrdersTopic: "orders.events",
	NotifyTopic: "notifications",
}

var defaultDispatch = Dispatch{
	MaxDriverDistanceKm: 20,
	OfferExpiryTime:     5 * time.Minute,
	MaxRetries:          3,
	BasePrice:           500,
	PricePerKm:          120,
}

var defaultOrdersGateway = OrdersGateway{
	BaseURL:     "http://localhost:8081",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultPprof returns the default pprof side-server settings.
func DefaultPprof() Pprof {
	return defaultPprof
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default offer-matching policy settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultOrdersGateway returns the default orders gateway settings.
func DefaultOrdersGateway() OrdersGateway {
	return defaultOrdersGateway
}
