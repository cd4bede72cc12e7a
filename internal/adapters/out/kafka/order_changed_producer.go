// Package kafka publishes order lifecycle events to a Kafka topic so that
// downstream consumers can react to status changes.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts *kafka.Writer for testing.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// orderChangedEnvelope is the wire format for order lifecycle events.
type orderChangedEnvelope struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	TotalAmount int64     `json:"total_amount"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderChangedProducer publishes order transition events to Kafka.
// Messages are keyed by order id so all events for one order land in the
// same partition and preserve their relative ordering.
type OrderChangedProducer struct {
	writer messageWriter
}

// NewOrderChangedProducer creates a producer writing to the given topic.
// The brokers string is a comma separated list of broker addresses.
func NewOrderChangedProducer(brokers string, topic string) (*OrderChangedProducer, error) {
	addrs := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &OrderChangedProducer{writer: writer}, nil
}

// Publish sends one order transition event to the topic.
func (p *OrderChangedProducer) Publish(ctx context.Context, event order.TransitionEvent) error {
	envelope := orderChangedEnvelope{
		EventType:   event.Type(),
		OrderID:     event.OrderID().String(),
		OrderNumber: event.OrderNumber(),
		CustomerID:  event.CustomerID().String(),
		FromStatus:  event.From().String(),
		ToStatus:    event.To().String(),
		TotalAmount: event.TotalAmount().Int64(),
		Reason:      event.Reason(),
		OccurredAt:  event.OccurredAt(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(envelope.OrderID),
		Value: payload,
		Time:  envelope.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write order changed event: %w", err)
	}
	return nil
}

// Close releases the underlying writer.
func (p *OrderChangedProducer) Close() error {
	return p.writer.Close()
}
