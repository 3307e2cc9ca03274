package app

import (
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orderevents"
	"service-dispatch/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newOrderEventsProcessor,
		newOrderEventsHandler,
		newOrdersConsumer,
	)
}

func newOrderEventsProcessor(
	svc *dispatch.Service,
	repo *repository.DispatchRepo,
	logger logx.Logger,
) *orderevents.Processor {
	return orderevents.NewProcessor(svc, repo, logger)
}

func newOrderEventsHandler(p *orderevents.Processor) kafka.HandleFunc {
	return p.Handle
}

func newOrdersConsumer(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, h, logger)
}
