package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// PublishError reports a failed publish. The already-persisted state change on
// the producer side is kept; callers decide whether losing the notification is
// fatal.
type PublishError struct {
	Exchange   string
	RoutingKey string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s/%s: %v", e.Exchange, e.RoutingKey, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Handler processes one delivered message body. A nil return acknowledges the
// message; an error negatively acknowledges it with requeue, so handlers must
// be idempotent under redelivery.
type Handler func(ctx context.Context, body []byte) error

// Subscription pairs a binding with its handler. Consuming services build an
// explicit list of these during startup.
type Subscription struct {
	Exchange   string
	RoutingKey string
	Queue      string
	Handler    Handler
}

// Bus owns one AMQP connection and one channel for the whole process, opened
// at startup and closed at shutdown. There is no automatic reconnect: a dead
// broker fails Publish and Subscribe setup fast.
type Bus struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
}

func Dial(url string, log *zap.Logger) (*Bus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Qos(8, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &Bus{conn: conn, ch: ch, log: log}, nil
}

// Publish declares exchange as a durable topic exchange (declaration is
// idempotent), serializes payload to JSON and sends it as a persistent message.
func (b *Bus) Publish(ctx context.Context, exchange, key string, payload any) error {
	if err := b.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return &PublishError{Exchange: exchange, RoutingKey: key, Err: err}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &PublishError{Exchange: exchange, RoutingKey: key, Err: err}
	}
	err = b.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return &PublishError{Exchange: exchange, RoutingKey: key, Err: err}
	}
	return nil
}

// Subscribe declares the exchange and a durable queue, binds it on the routing
// key and consumes until ctx is cancelled or the channel closes. Handler
// success acks the message; handler failure nacks with requeue.
func (b *Bus) Subscribe(ctx context.Context, sub Subscription) error {
	if err := b.ch.ExchangeDeclare(sub.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", sub.Exchange, err)
	}
	q, err := b.ch.QueueDeclare(sub.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", sub.Queue, err)
	}
	if err := b.ch.QueueBind(q.Name, sub.RoutingKey, sub.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s to %s/%s: %w", q.Name, sub.Exchange, sub.RoutingKey, err)
	}

	msgs, err := b.ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", q.Name, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				if err := sub.Handler(ctx, d.Body); err != nil {
					b.log.Warn("handler failed, requeueing",
						zap.String("queue", sub.Queue),
						zap.String("routing_key", d.RoutingKey),
						zap.Error(err))
					_ = d.Nack(false, true)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
