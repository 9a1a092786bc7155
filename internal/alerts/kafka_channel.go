package alerts

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// KafkaChannel publishes alert events to a Kafka topic
type KafkaChannel struct {
	config *config.KafkaConfig
	writer *kafka.Writer
}

// NewKafkaChannel creates a Kafka alert channel
func NewKafkaChannel(cfg *config.KafkaConfig) *KafkaChannel {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaChannel{
		config: cfg,
		writer: writer,
	}
}

// Name returns the channel name
func (c *KafkaChannel) Name() string { return "kafka" }

// Send publishes the alert event as JSON, keyed by alert kind.
// Retries with exponential backoff up to the configured maximum.
func (c *KafkaChannel) Send(ctx context.Context, event models.AlertEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Kind),
		Value: value,
		Time:  event.Timestamp,
	}

	var lastErr error
	for i := 0; i < c.config.MaxRetry; i++ {
		lastErr = c.writer.WriteMessages(ctx, msg)
		if lastErr == nil {
			return nil
		}
		log.Printf("kafka publish failed (attempt %d/%d): %v", i+1, c.config.MaxRetry, lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(1<<uint(i)) * 100 * time.Millisecond):
		}
	}
	return lastErr
}

// Close closes the Kafka writer
func (c *KafkaChannel) Close() error {
	return c.writer.Close()
}
