package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "wattline/contexts/telemetry/notification-service/application"
	"wattline/contexts/telemetry/notification-service/ports"
	"wattline/internal/shared/events"
)

// AlertConsumer relays overconsumption alerts to the owner's live
// subscribers. No subscriber connected means the alert is dropped, logged,
// and acknowledged; redelivery would not help a user who is not listening.
type AlertConsumer struct {
	Subscriber ports.EventSubscriber
	Hub        ports.SubscriberHub
	Logger     *slog.Logger
}

func (c AlertConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, events.TopicAlertEvents, c.handle)
}

func (c AlertConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	if envelope.Type != events.TypeOverconsumptionAlert {
		return nil
	}

	logger := application.ResolveLogger(c.Logger)

	var payload events.OverconsumptionAlert
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	msg := ports.AlertMessage{
		OwnerID:   payload.OwnerID,
		DeviceID:  payload.DeviceID,
		Value:     payload.Value,
		Threshold: payload.Threshold,
		Message: fmt.Sprintf(
			"ALERT: Device %d has exceeded its consumption limit! Current: %.2f kWh, Maximum allowed: %.2f kWh",
			payload.DeviceID, payload.Value, payload.Threshold,
		),
		Timestamp: payload.Timestamp.UTC().Format(time.RFC3339),
	}

	delivered := c.Hub.Broadcast(ctx, msg)
	if delivered == 0 {
		logger.Info("alert dropped, no live subscriber",
			"event", "notification_alert_dropped",
			"module", "telemetry/notification-service",
			"layer", "worker",
			"owner_id", payload.OwnerID,
			"device_id", payload.DeviceID,
		)
		return nil
	}

	logger.Info("alert relayed",
		"event", "notification_alert_relayed",
		"module", "telemetry/notification-service",
		"layer", "worker",
		"owner_id", payload.OwnerID,
		"device_id", payload.DeviceID,
		"subscribers", delivered,
	)
	return nil
}
