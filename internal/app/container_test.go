package app

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/logx"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Port: 8080,
		Orders: config.OrdersGateway{
			BaseURL:     "http://orders.local",
			MaxAttempts: 3,
			BaseDelay:   10 * time.Millisecond,
			MaxDelay:    100 * time.Millisecond,
		},
		Dispatch: config.Dispatch{
			MaxDriverDistanceKm: 5,
			OfferExpiryTime:     2 * time.Minute,
			MaxRetries:          3,
			BasePrice:           5000,
			PricePerKm:          700,
		},
	}
}

func setupTestContainer(t *testing.T) *dig.Container {
	t.Helper()

	c := dig.New()

	providers := []struct {
		name     string
		provider any
	}{
		{"context", func() context.Context { return context.Background() }},
		{"logger", logx.Nop},
		{"config", func() *config.Config { return newTestConfig() }},
		{"pgxpool", func() *pgxpool.Pool { return &pgxpool.Pool{} }},
		{"redis", func() *redis.Client { return redis.NewClient(&redis.Options{Addr: "localhost:6379"}) }},
		{"metrics", provideMetrics},
	}

	for _, p := range providers {
		err := c.Provide(p.provider)
		require.NoErrorf(t, err, "provide %s", p.name)
	}

	require.NoError(t, registerDomainServices(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func verifyServer(t *testing.T, srv *http.Server) {
	t.Helper()

	require.NotNil(t, srv, "http.Server is nil")
	require.Equal(t, ":8080", srv.Addr)
	require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
	require.Greater(t, srv.ReadTimeout, time.Duration(0))
	require.Greater(t, srv.WriteTimeout, time.Duration(0))
	require.Greater(t, srv.IdleTimeout, time.Duration(0))
}

func verifyHandlers(t *testing.T,
	base *handlers.Handlers,
	deliveryHandler *handlers.DeliveryHandler,
	clusterHandler *handlers.ClusterHandler,
	courierHandler *handlers.CourierHandler,
) {
	t.Helper()

	require.NotNil(t, base)
	require.NotNil(t, deliveryHandler)
	require.NotNil(t, clusterHandler)
	require.NotNil(t, courierHandler)
}

func TestRegisterServicesAndHTTP_ProvidesHttpServerAndHandlers(t *testing.T) {
	c := setupTestContainer(t)

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		deliveryHandler *handlers.DeliveryHandler,
		clusterHandler *handlers.ClusterHandler,
		courierHandler *handlers.CourierHandler,
	) {
		verifyServer(t, srv)
		verifyHandlers(t, base, deliveryHandler, clusterHandler, courierHandler)
	})
	require.NoError(t, err)
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterCore_ProvidesDependencies(t *testing.T) {
	c := dig.New()
	ctx := context.Background()

	err := registerCore(c, ctx)
	require.NoError(t, err)

	// config.Load parses process flags, so only the flag-free
	// dependencies are resolved here.
	err = c.Invoke(func(
		gotCtx context.Context,
		logger logx.Logger,
	) {
		require.Equal(t, ctx, gotCtx)
		require.NotNil(t, logger)
	})
	require.NoError(t, err)
}

func TestRegisterDb_UsesDbConnectAndProvidesPool(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()

	cfg := &config.Config{
		DB: config.DB{
			Host: "localhost",
			Port: "5432",
			User: "user",
			Pass: "pass",
			Name: "db",
		},
	}

	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))

	stubPool := &pgxpool.Pool{}

	stubConnect := func(
		gotCtx context.Context,
		dsn string,
		retries int,
		delay time.Duration,
	) (*pgxpool.Pool, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.DB.DSN(), dsn)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}

	err := registerDb(c, stubConnect)
	require.NoError(t, err)

	err = c.Invoke(func(pool *pgxpool.Pool) {
		require.Equal(t, stubPool, pool)
	})
	require.NoError(t, err)
}

func TestRegisterDb_ProvidesRedisClient(t *testing.T) {
	t.Parallel()

	c := dig.New()

	cfg := &config.Config{Redis: config.Redis{Addr: "localhost:6379", DB: 1}}

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))

	err := registerDb(c, func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
		return &pgxpool.Pool{}, nil
	})
	require.NoError(t, err)

	err = c.Invoke(func(rdb *redis.Client) {
		require.NotNil(t, rdb)
		require.Equal(t, "localhost:6379", rdb.Options().Addr)
		require.Equal(t, 1, rdb.Options().DB)
	})
	require.NoError(t, err)
}

func TestRegisterDb_ConnectError_SurfacesOnInvoke(t *testing.T) {
	t.Parallel()

	c := dig.New()

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() *config.Config { return newTestConfig() }))

	err := registerDb(c, func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
		return nil, fmt.Errorf("db failed")
	})
	require.NoError(t, err)

	err = c.Invoke(func(pool *pgxpool.Pool) {
		_ = pool
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db failed")
}

func TestContainerBuilder_MustBuild_LogsFatalOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		}).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		})

	c := builder.MustBuild(ctx)
	require.NotNil(t, c)
}
