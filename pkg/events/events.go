// Package events publishes storefront domain events to RabbitMQ. Publishing
// is best-effort: callers treat a broker failure as a logged warning, never
// as a request failure.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const queueName = "storefront_events"

type Config struct {
	URL string
}

// Publisher holds the AMQP connection and channel. A nil *Publisher is valid
// and drops every publish.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to RabbitMQ and declares the durable event queue.
func NewPublisher(cfg Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", queueName, err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close publisher: %v", errs)
	}
	return nil
}

func (p *Publisher) publish(event string, payload map[string]any) {
	if p == nil || p.channel == nil {
		return
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("events: marshal %s: %v", event, err)
		return
	}
	err = p.channel.Publish("", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Printf("events: publish %s: %v", event, err)
	}
}

func (p *Publisher) PublishOrderPlaced(orderID, buyerID, sellerID string, total float64) {
	p.publish("order.placed", map[string]any{
		"order_id": orderID, "buyer_id": buyerID, "seller_id": sellerID, "total": total,
	})
}

func (p *Publisher) PublishPointsEarned(userID string, points int) {
	p.publish("points.earned", map[string]any{
		"user_id": userID, "points": points,
	})
}
