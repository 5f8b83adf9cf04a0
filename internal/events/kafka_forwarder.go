package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer the forwarder needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder republishes domain events to Kafka, one topic per event type.
type KafkaForwarder struct {
	writer      MessageWriter
	topicPrefix string
	logger      *zap.Logger
}

// batchTimeout bounds how long a synchronous single-event write waits for a
// batch to fill.
const batchTimeout = 5 * time.Millisecond

// NewKafkaForwarder builds a forwarder writing to brokers.
func NewKafkaForwarder(brokers []string, topicPrefix string, logger *zap.Logger) (*KafkaForwarder, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka forwarder requires at least one broker")
	}
	return newKafkaForwarder(newKafkaWriter(brokers), topicPrefix, logger), nil
}

func newKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           5 * time.Second,
	}
}

func newKafkaForwarder(writer MessageWriter, topicPrefix string, logger *zap.Logger) *KafkaForwarder {
	return &KafkaForwarder{writer: writer, topicPrefix: topicPrefix, logger: logger}
}

// Topic returns the topic an event type is written to.
func (f *KafkaForwarder) Topic(eventType EventType) string {
	if f.topicPrefix == "" {
		return string(eventType)
	}
	return f.topicPrefix + "." + string(eventType)
}

// Handle is an EventHandler; the entity id is the partition key so events for
// one complaint or ticket stay ordered.
func (f *KafkaForwarder) Handle(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	err = f.writer.WriteMessages(ctx, kafka.Message{
		Topic: f.Topic(event.Type),
		Key:   []byte(event.EntityID),
		Value: payload,
		Time:  event.Timestamp.UTC(),
	})
	if err != nil {
		f.logger.Warn("kafka publish failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}
