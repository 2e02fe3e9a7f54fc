package ports

import (
	"context"

	"wattline/internal/shared/events"
)

// AlertMessage is what a subscriber receives when one of their devices
// overconsumes.
type AlertMessage struct {
	OwnerID   int64   `json:"owner_id"`
	DeviceID  int64   `json:"device_id"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
}

// SubscriberHub pushes alerts to an owner's live subscribers and reports
// how many received it.
type SubscriberHub interface {
	Broadcast(ctx context.Context, msg AlertMessage) int
}

// EventHandler matches the platform bus handler signature.
type EventHandler = func(ctx context.Context, envelope events.Envelope) error

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
}
