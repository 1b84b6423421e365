// Package amqpnotify publishes order lifecycle events to a RabbitMQ
// exchange so off-process consumers (kitchen displays, analytics) receive
// the same stream the in-process subscribers do.
package amqpnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// Publisher is a ports.Notifier that publishes events to a topic exchange.
// The routing key is the event name, e.g. "OrderReady", so consumers can
// bind to the subset they care about.
type Publisher struct {
	channel  *amqp.Channel
	exchange string
}

// eventMessage is the wire shape of a published event.
type eventMessage struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	TableNumber int       `json:"table_number"`
	Status      string    `json:"status"`
	Version     int64     `json:"version"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewPublisher declares the exchange and returns a publisher bound to it.
func NewPublisher(channel *amqp.Channel, exchange string) (*Publisher, error) {
	err := channel.ExchangeDeclare(
		exchange,
		exchangeKind,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{channel: channel, exchange: exchange}, nil
}

// Name identifies the notifier in subscription management.
func (p *Publisher) Name() string { return "amqp" }

// Notify publishes the event as a persistent JSON message.
func (p *Publisher) Notify(ctx context.Context, event order.Event) error {
	body, err := json.Marshal(eventMessage{
		Event:       event.Type.String(),
		OrderID:     event.OrderID.String(),
		TableNumber: event.TableNumber,
		Status:      event.Status.String(),
		Version:     event.Version,
		Reason:      event.Reason,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		event.Type.String(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		})
}
