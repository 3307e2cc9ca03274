package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	ordersgw "service-dispatch/internal/gateway/orders"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/cluster"
	"service-dispatch/internal/service/courierdir"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/offer"
)

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewDispatchRepo,
		repository.NewCourierRepo,
		repository.NewLocationStore,
		newPriceSchedule,
		newNotifier,
		newOfferService,
		newClusterService,
		newCourierDirectory,
		newOrdersGateway,
		newDispatchService,
	)
}

func newPriceSchedule(cfg *config.Config) offer.PriceSchedule {
	return offer.NewFlatSchedule(cfg.Dispatch.BasePrice, cfg.Dispatch.PricePerKm)
}

type notifierOut struct {
	dig.Out

	Notifier notify.Notifier
	// Kafka is the concrete producer for shutdown; nil when notifications
	// are not configured.
	Kafka *notify.KafkaNotifier
}

func newNotifier(cfg *config.Config, logger logx.Logger) (notifierOut, error) {
	n, err := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.NotifyTopic, logger)
	if err != nil {
		return notifierOut{}, fmt.Errorf("kafka notifier: %w", err)
	}
	if n == nil {
		logger.Warn("notifications disabled: kafka brokers or topic not configured")
		return notifierOut{Notifier: notify.Nop()}, nil
	}
	return notifierOut{Notifier: n, Kafka: n}, nil
}

type offerServiceIn struct {
	dig.In

	Pricing   offer.PriceSchedule
	Notifier  notify.Notifier
	Cfg       *config.Config
	Created   prometheus.Counter `name:"dispatch_offers_created_total"`
	Conflicts prometheus.Counter `name:"dispatch_accept_conflicts_total"`
	Logger    logx.Logger
}

func newOfferService(in offerServiceIn) *offer.Service {
	return offer.NewService(in.Pricing, in.Notifier, in.Cfg.Dispatch.OfferExpiryTime, in.Created, in.Conflicts, in.Logger)
}

type clusterServiceIn struct {
	dig.In

	Repo     *repository.DispatchRepo
	Notifier notify.Notifier
	Splits   prometheus.Counter `name:"dispatch_cluster_splits_total"`
	Logger   logx.Logger
}

func newClusterService(in clusterServiceIn) *cluster.Service {
	return cluster.NewService(in.Repo, in.Repo, in.Notifier, in.Splits, in.Logger)
}

func newCourierDirectory(
	couriers *repository.CourierRepo,
	locations *repository.LocationStore,
	logger logx.Logger,
) *courierdir.Directory {
	return courierdir.NewDirectory(couriers, locations, 3*time.Second, logger)
}

type ordersGatewayIn struct {
	dig.In

	Cfg     *config.Config
	Retries prometheus.Counter `name:"gateway_retries_total"`
	Logger  logx.Logger
}

func newOrdersGateway(in ordersGatewayIn) (*ordersgw.RetryingGateway, error) {
	base := ordersgw.NewHTTPGateway(in.Cfg.Orders.BaseURL, nil)
	if base == nil {
		return nil, fmt.Errorf("orders gateway: base url not configured")
	}
	return ordersgw.NewRetryingGateway(base, in.Logger, in.Retries, ordersgw.RetryConfig{
		MaxAttempts: in.Cfg.Orders.MaxAttempts,
		BaseDelay:   in.Cfg.Orders.BaseDelay,
		MaxDelay:    in.Cfg.Orders.MaxDelay,
	}), nil
}

type dispatchServiceIn struct {
	dig.In

	Repo          *repository.DispatchRepo
	Offers        *offer.Service
	Clusters      *cluster.Service
	Directory     *courierdir.Directory
	Orders        *ordersgw.RetryingGateway
	Notifier      notify.Notifier
	Cfg           *config.Config
	AssignRetries prometheus.Counter `name:"dispatch_assign_retries_total"`
	Logger        logx.Logger
}

func newDispatchService(in dispatchServiceIn) *dispatch.Service {
	return dispatch.NewService(
		in.Repo,
		in.Offers,
		in.Clusters,
		in.Directory,
		in.Orders,
		in.Notifier,
		dispatch.Config{
			MaxDriverDistanceKm: in.Cfg.Dispatch.MaxDriverDistanceKm,
			MaxRetries:          in.Cfg.Dispatch.MaxRetries,
		},
		in.AssignRetries,
		in.Logger,
	)
}
