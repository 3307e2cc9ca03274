package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
)

// Runner runs the HTTP service
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP service using the provided DI container
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

// MustRun starts the service and blocks until shutdown
func (r *Runner) MustRun(container *dig.Container) {
	if err := r.runFn(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runDeps struct {
	dig.In

	Ctx    context.Context
	Server *http.Server
	Pprof  *http.Server `name:"pprof_server"`
	Pool   *pgxpool.Pool
	Kafka  *notify.KafkaNotifier
	Logger logx.Logger
}

func run(container *dig.Container) error {
	return container.Invoke(func(d runDeps) error {
		startServer(d.Server, d.Logger, "service-dispatch")
		if d.Pprof != nil {
			startServer(d.Pprof, d.Logger, "pprof")
		}
		waitForShutdown(d.Ctx, d.Logger)
		gracefulShutdown(d.Server, d.Logger, 15*time.Second)
		closeResources(d)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger, name string) {
	go func() {
		logger.Info(name+" listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("%s listen error: %v", name, err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-dispatch...")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(d runDeps) {
	if err := d.Server.Close(); err != nil {
		d.Logger.Error("server close error", logx.Err(err))
	}
	if d.Pprof != nil {
		if err := d.Pprof.Close(); err != nil {
			d.Logger.Error("pprof close error", logx.Err(err))
		}
	}
	if err := d.Kafka.Close(); err != nil {
		d.Logger.Error("kafka notifier close error", logx.Err(err))
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}
