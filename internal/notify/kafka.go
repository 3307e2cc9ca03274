package notify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/IBM/sarama"

	"service-dispatch/internal/logx"
)

// KafkaNotifier publishes notification messages to a Kafka topic. Sends are
// asynchronous; producer errors are logged and dropped.
type KafkaNotifier struct {
	producer sarama.AsyncProducer
	topic    string
	logger   logx.Logger
}

// NewKafkaNotifier creates a notifier backed by a Kafka async producer.
// Returns nil (treated as disabled) when brokers or topic are not configured.
func NewKafkaNotifier(brokers []string, topic string, logger logx.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	n := &KafkaNotifier{producer: producer, topic: topic, logger: logger}
	go n.drainErrors()
	return n, nil
}

// Notify publishes the message. Marshal failures and producer errors are
// logged, never returned.
func (n *KafkaNotifier) Notify(ctx context.Context, msg Message) {
	if n == nil {
		return
	}

	value, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("notify: marshal failed",
			logx.String("event_type", msg.EventType),
			logx.Err(err),
		)
		return
	}

	pm := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(msg.Recipient.ID),
		Value: sarama.ByteEncoder(value),
	}

	select {
	case n.producer.Input() <- pm:
	case <-ctx.Done():
		n.logger.Warn("notify: dropped on context cancel",
			logx.String("event_type", msg.EventType),
			logx.String("entity_id", msg.EntityID),
		)
	}
}

func (n *KafkaNotifier) drainErrors() {
	for perr := range n.producer.Errors() {
		n.logger.Error("notify: produce failed", logx.Err(perr.Err))
	}
}

// Close shuts the underlying producer down.
func (n *KafkaNotifier) Close() error {
	if n == nil {
		return nil
	}
	return n.producer.Close()
}

var _ Notifier = (*KafkaNotifier)(nil)
