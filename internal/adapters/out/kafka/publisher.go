// Package kafka publishes order events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultOrderChangedTopic = "order.status.changed"
	EventTypeStatusChanged   = "order.status_changed"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type StatusChangedPayload struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Phase     string    `json:"phase"`
}

type Event struct {
	EventID   string               `json:"event_id"`
	OrderID   string               `json:"order_id"`
	Type      string               `json:"type"`
	CreatedAt time.Time            `json:"created_at"`
	Payload   StatusChangedPayload `json:"payload"`
}

// Publisher implements ports.StatusChangePublisher. Without brokers it is
// disabled and every publish is a no-op.
type Publisher struct {
	writer MessageWriter
	topic  string
	clock  kernel.Clock
	logger *slog.Logger
}

// NewPublisher builds a hash-balanced writer for a comma separated broker list.
func NewPublisher(brokersCSV, topic string, clock kernel.Clock, logger *slog.Logger) *Publisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if topic == "" {
		topic = DefaultOrderChangedTopic
	}

	var writer MessageWriter
	if len(brokers) > 0 {
		writer = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
	}
	return NewPublisherWithWriter(writer, topic, clock, logger)
}

// NewPublisherWithWriter wraps an existing writer; a nil writer disables publishing.
func NewPublisherWithWriter(writer MessageWriter, topic string, clock kernel.Clock, logger *slog.Logger) *Publisher {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &Publisher{
		writer: writer,
		topic:  topic,
		clock:  clock,
		logger: logger.With("component", "kafka_publisher", "topic", topic),
	}
}

func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// PublishStatusChanged writes one order.status_changed event keyed by order id,
// so every change of one order lands on the same partition.
func (p *Publisher) PublishStatusChanged(ctx context.Context, orderID string, change order.StatusChange) error {
	if !p.Enabled() {
		return nil
	}

	now := p.clock.Now()
	event := Event{
		EventID:   uuid.NewString(),
		OrderID:   orderID,
		Type:      EventTypeStatusChanged,
		CreatedAt: now,
		Payload: StatusChangedPayload{
			From:      change.From().String(),
			To:        change.To().String(),
			ChangedBy: change.ChangedBy().String(),
			ChangedAt: change.ChangedAt(),
			Phase:     change.To().Phase().String(),
		},
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", EventTypeStatusChanged, err)
	}

	if err = p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(orderID), Value: data, Time: now}); err != nil {
		return fmt.Errorf("publish %s event for order %s: %w", EventTypeStatusChanged, orderID, err)
	}

	p.logger.DebugContext(ctx, "Published status change", "order_id", orderID, "event_id", event.EventID)
	return nil
}

func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
