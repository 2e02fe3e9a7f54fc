package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"wattline/internal/shared/events"
)

const (
	exchangeFanout = "fanout"
	exchangeDirect = "direct"

	// Handler failures are always requeued. There is no dead-letter policy:
	// a permanently failing handler loops forever, which is a known
	// limitation of the delivery contract.
	requeueOnHandlerError = true
)

// AMQP is the broker-backed bus. Publish opens a connection per call
// (retrying until the broker is reachable), declares the exchange, sends the
// envelope, and closes the connection; only bus acceptance is confirmed.
// Subscriptions run on dedicated goroutines for the process lifetime.
type AMQP struct {
	url           string
	consumerName  string
	retryInterval time.Duration
	logger        *slog.Logger
}

func NewAMQP(url string, consumerName string, retryInterval time.Duration, logger *slog.Logger) *AMQP {
	if retryInterval <= 0 {
		retryInterval = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQP{
		url:           url,
		consumerName:  consumerName,
		retryInterval: retryInterval,
		logger:        logger,
	}
}

func (b *AMQP) Publish(ctx context.Context, topic string, envelope events.Envelope) error {
	return b.publish(ctx, topic, exchangeFanout, "", envelope)
}

func (b *AMQP) PublishKeyed(ctx context.Context, topic string, key string, envelope events.Envelope) error {
	return b.publish(ctx, topic, exchangeDirect, key, envelope)
}

func (b *AMQP) Subscribe(ctx context.Context, topic string, handler Handler) error {
	go b.consumeLoop(ctx, topic, exchangeFanout, "", handler)
	return nil
}

func (b *AMQP) SubscribeKeyed(ctx context.Context, topic string, key string, handler Handler) error {
	go b.consumeLoop(ctx, topic, exchangeDirect, key, handler)
	return nil
}

func (b *AMQP) publish(ctx context.Context, topic string, kind string, key string, envelope events.Envelope) error {
	conn, err := b.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel for %s: %w", topic, err)
	}
	defer channel.Close()

	if err := declareExchange(channel, topic, kind); err != nil {
		return err
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope for %s: %w", topic, err)
	}

	err = channel.PublishWithContext(ctx, topic, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	b.logger.Info("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"routing_key", key,
		"event_type", envelope.Type,
		"sender", envelope.Sender,
	)
	return nil
}

// consumeLoop owns one subscription: a private, exclusive, non-durable queue
// bound to the topic's exchange. A lost broker connection ends the loop;
// restarting the subscription is a deployment concern.
func (b *AMQP) consumeLoop(ctx context.Context, topic string, kind string, key string, handler Handler) {
	conn, err := b.connect(ctx)
	if err != nil {
		return
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		b.logConsumeSetupError(topic, key, err)
		return
	}
	defer channel.Close()

	if err := declareExchange(channel, topic, kind); err != nil {
		b.logConsumeSetupError(topic, key, err)
		return
	}

	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		b.logConsumeSetupError(topic, key, err)
		return
	}
	if err := channel.QueueBind(queue.Name, key, topic, false, nil); err != nil {
		b.logConsumeSetupError(topic, key, err)
		return
	}

	deliveries, err := channel.Consume(queue.Name, b.consumerName, false, true, false, false, nil)
	if err != nil {
		b.logConsumeSetupError(topic, key, err)
		return
	}

	b.logger.Info("subscription started",
		"event", "bus_subscribed",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"routing_key", key,
		"queue", queue.Name,
		"consumer", b.consumerName,
	)

	for {
		select {
		case <-ctx.Done():
			return
		case delivery, open := <-deliveries:
			if !open {
				b.logger.Error("broker connection lost, subscription ended",
					"event", "bus_subscription_lost",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"routing_key", key,
				)
				return
			}
			b.dispatch(ctx, topic, delivery, handler)
		}
	}
}

func (b *AMQP) dispatch(ctx context.Context, topic string, delivery amqp.Delivery, handler Handler) {
	envelope, err := events.Decode(delivery.Body)
	if err != nil {
		// Malformed input is not retryable: acknowledge and drop.
		b.logger.Warn("malformed message dropped",
			"event", "bus_malformed_dropped",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"error", err.Error(),
		)
		_ = delivery.Ack(false)
		return
	}

	if err := handler(ctx, envelope); err != nil {
		b.logger.Error("handler failed, requesting redelivery",
			"event", "bus_handler_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_type", envelope.Type,
			"error", err.Error(),
		)
		_ = delivery.Nack(false, requeueOnHandlerError)
		return
	}
	_ = delivery.Ack(false)
}

// connect blocks until the broker accepts a connection, retrying at a fixed
// interval. This is the only unbounded wait in the system and it must stay
// cancellable through ctx.
func (b *AMQP) connect(ctx context.Context) (*amqp.Connection, error) {
	for {
		conn, err := amqp.Dial(b.url)
		if err == nil {
			return conn, nil
		}

		b.logger.Warn("broker not reachable, retrying",
			"event", "bus_connect_retry",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"url", b.url,
			"retry_interval", b.retryInterval.String(),
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(b.retryInterval):
		}
	}
}

func (b *AMQP) logConsumeSetupError(topic string, key string, err error) {
	b.logger.Error("subscription setup failed",
		"event", "bus_subscribe_failed",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"routing_key", key,
		"error", err.Error(),
	)
}

func declareExchange(channel *amqp.Channel, topic string, kind string) error {
	if err := channel.ExchangeDeclare(topic, kind, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", topic, err)
	}
	return nil
}
