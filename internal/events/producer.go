package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Producer emits domain events. Callers use it best-effort: log and
// ignore errors.
type Producer interface {
	Emit(ctx context.Context, event Envelope) error
	Close() error
}

// KafkaProducer implements Producer using segmentio/kafka-go.
type KafkaProducer struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewKafkaProducer creates a Kafka producer writing to the given topic.
// Returns (nil, nil) when brokers or topic are empty: event emission is
// optional and a nil *KafkaProducer is a safe no-op. Call Close when
// shutting down.
func NewKafkaProducer(brokers []string, topic string, log zerolog.Logger) (*KafkaProducer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer, log: log}, nil
}

// Emit serializes the event as JSON and writes it to the topic, keyed by
// event name so per-entity ordering is preserved per partition. A short
// timeout keeps slow Kafka from blocking request handlers.
func (p *KafkaProducer) Emit(ctx context.Context, event Envelope) error {
	if p == nil || p.writer == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.Name),
		Value: payload,
	})
	if err != nil {
		p.log.Error().Err(err).Str("event", event.Name).Msg("events: kafka emit failed")
		return err
	}
	return nil
}

// Close closes the Kafka writer. Safe to call multiple times.
func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
