package messaging

import (
	"context"

	"wattline/internal/shared/events"
)

// Handler processes one decoded envelope. Returning an error requests
// redelivery, so handlers must be idempotent. Alias rather than a defined
// type so service ports can state the same signature without importing
// this package.
type Handler = func(ctx context.Context, envelope events.Envelope) error

// Bus is the publish/subscribe contract shared by every service. Broadcast
// topics deliver each message to every live subscriber; keyed topics deliver
// each message to exactly the subscriber bound to its routing key.
//
// Delivery is at-least-once and best-effort: a subscriber that is offline
// when a message is published never sees it.
type Bus interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
	PublishKeyed(ctx context.Context, topic string, key string, envelope events.Envelope) error
	Subscribe(ctx context.Context, topic string, handler Handler) error
	SubscribeKeyed(ctx context.Context, topic string, key string, handler Handler) error
}
