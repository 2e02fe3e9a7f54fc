package workers

import (
	"context"
	"log/slog"

	application "wattline/contexts/telemetry/monitoring-service/application"
	"wattline/contexts/telemetry/monitoring-service/domain/entities"
	"wattline/contexts/telemetry/monitoring-service/ports"
	"wattline/internal/shared/events"
)

const senderName = "monitoring-service"

// ReadingConsumer processes this replica's shard of telemetry readings:
// resolve the device mapping, check the value against the registry limit,
// raise an alert on overconsumption, and always persist the reading.
//
// A reading for an unmapped device is dropped, not requeued: the mapping
// may simply never arrive (broadcasts are best-effort) and redelivery would
// loop forever.
type ReadingConsumer struct {
	Subscriber ports.EventSubscriber
	Mappings   ports.MappingRepository
	Readings   ports.ReadingRepository
	Limits     ports.LimitFetcher
	Publisher  ports.EventPublisher
	ReplicaID  int
	Logger     *slog.Logger
}

func (c ReadingConsumer) Start(ctx context.Context) error {
	return c.Subscriber.SubscribeKeyed(ctx, events.TopicTelemetryIngest, events.ReplicaKey(c.ReplicaID), c.handle)
}

func (c ReadingConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	if envelope.Type != events.TypeConsumptionReading {
		return nil
	}

	logger := application.ResolveLogger(c.Logger)

	var payload events.ConsumptionReading
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	mapping, exists, err := c.Mappings.GetByDeviceID(ctx, payload.DeviceID)
	if err != nil {
		return err
	}
	if !exists {
		logger.Warn("reading for unmapped device dropped",
			"event", "monitoring_reading_unmapped",
			"module", "telemetry/monitoring-service",
			"layer", "worker",
			"device_id", payload.DeviceID,
		)
		return nil
	}

	limit, err := c.Limits.DeviceLimit(ctx, payload.DeviceID)
	if err != nil {
		// Threshold check is skipped on a registry outage, but the reading
		// is still persisted below.
		logger.Error("device limit fetch failed, threshold check skipped",
			"event", "monitoring_limit_fetch_failed",
			"module", "telemetry/monitoring-service",
			"layer", "worker",
			"device_id", payload.DeviceID,
			"error", err,
		)
	} else if payload.Value > limit {
		c.publishAlert(ctx, logger, mapping, payload, limit)
	}

	if _, err := c.Readings.Insert(ctx, entities.Reading{
		DeviceID:  payload.DeviceID,
		OwnerID:   mapping.OwnerID,
		Value:     payload.Value,
		Timestamp: payload.Timestamp,
	}); err != nil {
		return err
	}

	logger.Info("reading persisted",
		"event", "monitoring_reading_persisted",
		"module", "telemetry/monitoring-service",
		"layer", "worker",
		"device_id", payload.DeviceID,
		"value", payload.Value,
	)
	return nil
}

// publishAlert is best-effort: a broker failure here never blocks the
// reading from being persisted.
func (c ReadingConsumer) publishAlert(ctx context.Context, logger *slog.Logger, mapping entities.DeviceMapping, reading events.ConsumptionReading, limit float64) {
	envelope, err := events.New(events.TypeOverconsumptionAlert, senderName, events.OverconsumptionAlert{
		OwnerID:   mapping.OwnerID,
		DeviceID:  reading.DeviceID,
		Value:     reading.Value,
		Threshold: limit,
		Timestamp: reading.Timestamp,
	})
	if err == nil {
		err = c.Publisher.Publish(ctx, events.TopicAlertEvents, envelope)
	}
	if err != nil {
		logger.Error("overconsumption alert publish failed",
			"event", "monitoring_alert_publish_failed",
			"module", "telemetry/monitoring-service",
			"layer", "worker",
			"device_id", reading.DeviceID,
			"error", err,
		)
		return
	}

	logger.Warn("overconsumption alert raised",
		"event", "monitoring_alert_raised",
		"module", "telemetry/monitoring-service",
		"layer", "worker",
		"device_id", reading.DeviceID,
		"owner_id", mapping.OwnerID,
		"value", reading.Value,
		"threshold", limit,
	)
}
