package event

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer used by the relay
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRelay forwards outbox events to a Kafka topic. Messages are keyed by
// aggregate ID so transitions of one return line stay ordered.
type KafkaRelay struct {
	writer     MessageWriter
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewKafkaWriter builds a writer that balances by message key
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// NewKafkaRelay creates a relay on top of writer
func NewKafkaRelay(writer MessageWriter, serializer *EventSerializer, logger *zap.Logger) *KafkaRelay {
	return &KafkaRelay{
		writer:     writer,
		serializer: serializer,
		logger:     logger,
	}
}

// Publish writes all events in a single batch
func (r *KafkaRelay) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := r.serializer.Serialize(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: payload,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType())},
				{Key: "event_id", Value: []byte(event.EventID().String())},
				{Key: "aggregate_type", Value: []byte(event.AggregateType())},
			},
		})
	}

	if err := r.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka relay: %w", err)
	}

	r.logger.Debug("relayed events to kafka", zap.Int("count", len(msgs)))
	return nil
}

// Close flushes and closes the underlying writer
func (r *KafkaRelay) Close() error {
	return r.writer.Close()
}
