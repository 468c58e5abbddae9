// Package kafka publishes dashboard lifecycle events. The producer is
// optional: when Kafka is disabled the refresher simply skips publishing.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"oil-dashboard/internal/models"
)

// Producer handles publishing events to Kafka.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishCacheRefreshed publishes a cache-refresh completion event listing
// the repopulated keys.
func (p *Producer) PublishCacheRefreshed(ctx context.Context, keys []string, took time.Duration) error {
	event := models.RefreshEvent{
		EventType: "CACHE_REFRESHED",
		Keys:      keys,
		Duration:  took.String(),
		Timestamp: time.Now(),
	}
	return p.publish(ctx, "cache-refresh", event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.RefreshEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
