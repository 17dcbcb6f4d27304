package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaRelay forwards accepted transition events to a Kafka topic so that
// external consumers (delivery workers, analytics) can react to them.
// It is registered on the bus like any other handler; relay failures are
// isolated by the bus and never affect the committed transition.
type KafkaRelay struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaRelay creates a relay writing to the given brokers and topic.
func NewKafkaRelay(brokers []string, topic string, logger *zap.Logger) *KafkaRelay {
	return &KafkaRelay{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

// Handles returns the event types the relay forwards.
func (r *KafkaRelay) Handles() []string {
	return []string{
		OrderStatusChangedType,
		PaymentConfirmedType,
	}
}

// Handle marshals the event and writes it keyed by aggregate ID, so all
// events of one order land in the same partition in order.
func (r *KafkaRelay) Handle(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: data,
		Time:  event.OccurredAt(),
	})
	if err != nil {
		r.logger.Error("kafka relay write failed",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (r *KafkaRelay) Close() error {
	return r.writer.Close()
}

// Compile-time check that KafkaRelay implements Handler.
var _ Handler = (*KafkaRelay)(nil)
