package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores database connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores courier location store settings.
type Redis struct {
	Addr string
	DB   int
}

// Kafka stores order-events consumer and notification producer settings.
type Kafka struct {
	Brokers     []string
	GroupID     string
	OrdersTopic string
	NotifyTopic string
}

// Dispatch stores offer-matching policy settings.
type Dispatch struct {
	// MaxDriverDistanceKm is the split threshold: a courier farther than
	// this from the pickup point triggers a relay split on accept.
	MaxDriverDistanceKm float64
	// OfferExpiryTime is the offer TTL.
	OfferExpiryTime time.Duration
	// MaxRetries bounds decline-triggered reassignment per delivery.
	MaxRetries int
	// BasePrice and PricePerKm feed the flat offer price schedule, in cents.
	BasePrice  int64
	PricePerKm int64
}

// OrdersGateway stores the orders service client settings.
type OrdersGateway struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Pprof stores the profiling side-server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// RateLimit stores courier-action rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores all service settings.
type Config struct {
	Port      int
	Pprof     Pprof
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Dispatch  Dispatch
	Orders    OrdersGateway
	RateLimit RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	var err error
	cfg := &Config{}

	load := func(name string, fn func() error) {
		if err != nil {
			return
		}
		if e := fn(); e != nil {
			err = fmt.Errorf("%s: %w", name, e)
		}
	}

	load("port", func() (e error) { cfg.Port, e = envInt("PORT", defaultPort); return })
	load("pprof", func() error { return loadPprof(&cfg.Pprof) })
	load("db", func() error { return loadDB(&cfg.DB) })
	load("redis", func() error { return loadRedis(&cfg.Redis) })
	load("kafka", func() error { return loadKafka(&cfg.Kafka) })
	load("dispatch", func() error { return loadDispatch(&cfg.Dispatch) })
	load("orders gateway", func() error { return loadOrders(&cfg.Orders) })
	load("rate limit", func() error { return loadRateLimit(&cfg.RateLimit) })
	if err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDB(db *DB) error {
	db.Host = envStr("DB_HOST", defaultDB.Host)
	db.Port = envStr("DB_PORT", defaultDB.Port)
	db.User = envStr("DB_USER", defaultDB.User)
	db.Pass = envStr("DB_PASS", defaultDB.Pass)
	db.Name = envStr("DB_NAME", defaultDB.Name)
	if _, err := strconv.Atoi(db.Port); err != nil {
		return fmt.Errorf("invalid db port %q", db.Port)
	}
	return nil
}

func loadPprof(p *Pprof) (err error) {
	if p.Enabled, err = envBool("PPROF_ENABLED", defaultPprof.Enabled); err != nil {
		return err
	}
	p.Addr = envStr("PPROF_ADDR", defaultPprof.Addr)
	p.User = envStr("PPROF_USER", defaultPprof.User)
	p.Pass = envStr("PPROF_PASS", defaultPprof.Pass)
	return nil
}

func loadRedis(r *Redis) (err error) {
	r.Addr = envStr("REDIS_ADDR", defaultRedis.Addr)
	r.DB, err = envInt("REDIS_DB", defaultRedis.DB)
	return err
}

func loadKafka(k *Kafka) error {
	k.Brokers = envList("KAFKA_BROKERS", defaultKafka.Brokers)
	k.GroupID = envStr("KAFKA_GROUP_ID", defaultKafka.GroupID)
	k.OrdersTopic = envStr("KAFKA_ORDERS_TOPIC", defaultKafka.OrdersTopic)
	k.NotifyTopic = envStr("KAFKA_NOTIFY_TOPIC", defaultKafka.NotifyTopic)
	return nil
}

func loadDispatch(d *Dispatch) (err error) {
	if d.MaxDriverDistanceKm, err = envFloat("DISPATCH_MAX_DRIVER_DISTANCE_KM", defaultDispatch.MaxDriverDistanceKm); err != nil {
		return err
	}
	if d.OfferExpiryTime, err = envDuration("DISPATCH_OFFER_EXPIRY", defaultDispatch.OfferExpiryTime); err != nil {
		return err
	}
	if d.MaxRetries, err = envInt("DISPATCH_MAX_RETRIES", defaultDispatch.MaxRetries); err != nil {
		return err
	}
	if d.BasePrice, err = envInt64("DISPATCH_BASE_PRICE", defaultDispatch.BasePrice); err != nil {
		return err
	}
	d.PricePerKm, err = envInt64("DISPATCH_PRICE_PER_KM", defaultDispatch.PricePerKm)
	return err
}

func loadOrders(o *OrdersGateway) (err error) {
	o.BaseURL = envStr("ORDERS_BASE_URL", defaultOrdersGateway.BaseURL)
	if o.MaxAttempts, err = envInt("ORDERS_MAX_ATTEMPTS", defaultOrdersGateway.MaxAttempts); err != nil {
		return err
	}
	if o.BaseDelay, err = envDuration("ORDERS_BASE_DELAY", defaultOrdersGateway.BaseDelay); err != nil {
		return err
	}
	o.MaxDelay, err = envDuration("ORDERS_MAX_DELAY", defaultOrdersGateway.MaxDelay)
	return err
}

func loadRateLimit(rl *RateLimit) (err error) {
	if rl.Enabled, err = envBool("RATE_LIMIT_ENABLED", defaultRateLimit.Enabled); err != nil {
		return err
	}
	if rl.Rate, err = envFloat("RATE_LIMIT_RATE", defaultRateLimit.Rate); err != nil {
		return err
	}
	if rl.Burst, err = envInt("RATE_LIMIT_BURST", defaultRateLimit.Burst); err != nil {
		return err
	}
	if rl.TTL, err = envDuration("RATE_LIMIT_TTL", defaultRateLimit.TTL); err != nil {
		return err
	}
	rl.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", defaultRateLimit.MaxBuckets)
	return err
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Dispatch.MaxDriverDistanceKm <= 0 {
		return fmt.Errorf("invalid max driver distance: %f", c.Dispatch.MaxDriverDistanceKm)
	}
	if c.Dispatch.OfferExpiryTime <= 0 {
		return fmt.Errorf("invalid offer expiry: %s", c.Dispatch.OfferExpiryTime)
	}
	if c.Dispatch.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries: %d", c.Dispatch.MaxRetries)
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, v)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
