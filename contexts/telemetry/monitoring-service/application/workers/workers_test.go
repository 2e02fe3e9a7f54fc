package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"wattline/contexts/telemetry/monitoring-service/adapters/memory"
	"wattline/contexts/telemetry/monitoring-service/domain/entities"
	"wattline/internal/shared/events"
)

type recordingPublisher struct {
	envelopes []publishedEnvelope
}

type publishedEnvelope struct {
	topic    string
	envelope events.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, envelope events.Envelope) error {
	p.envelopes = append(p.envelopes, publishedEnvelope{topic: topic, envelope: envelope})
	return nil
}

type fakeLimits struct {
	limit float64
	err   error
}

func (f fakeLimits) DeviceLimit(context.Context, int64) (float64, error) {
	return f.limit, f.err
}

func mustEnvelope(t *testing.T, eventType string, payload any) events.Envelope {
	t.Helper()
	envelope, err := events.New(eventType, "test", payload)
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	return envelope
}

func readingEnvelope(t *testing.T, deviceID int64, value float64) events.Envelope {
	t.Helper()
	return mustEnvelope(t, events.TypeConsumptionReading, events.ConsumptionReading{
		DeviceID:  deviceID,
		OwnerID:   1,
		Value:     value,
		Timestamp: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestAddDeviceReplayKeepsOneMapping(t *testing.T) {
	mappings := memory.NewMappingStore()
	consumer := DeviceEventsConsumer{Mappings: mappings, Readings: memory.NewReadingStore()}

	envelope := mustEnvelope(t, events.TypeAddDevice, events.DeviceAdded{DeviceID: 7, OwnerID: 1})
	for i := 0; i < 2; i++ {
		if err := consumer.handle(context.Background(), envelope); err != nil {
			t.Fatalf("delivery %d failed: %v", i+1, err)
		}
	}

	if mappings.Count() != 1 {
		t.Fatalf("expected exactly one mapping, have %d", mappings.Count())
	}
	mapping, _, _ := mappings.GetByDeviceID(context.Background(), 7)
	if mapping.MappingKey == "" {
		t.Fatalf("mapping should carry a surrogate key")
	}
}

func TestDeleteDeviceCascadesReadings(t *testing.T) {
	mappings := memory.NewMappingStore()
	readings := memory.NewReadingStore()
	_ = mappings.Create(context.Background(), entities.DeviceMapping{MappingKey: "k", DeviceID: 7, OwnerID: 1})
	_, _ = readings.Insert(context.Background(), entities.Reading{DeviceID: 7, OwnerID: 1, Value: 1})
	_, _ = readings.Insert(context.Background(), entities.Reading{DeviceID: 8, OwnerID: 1, Value: 1})

	consumer := DeviceEventsConsumer{Mappings: mappings, Readings: readings}
	envelope := mustEnvelope(t, events.TypeDeleteDevice, events.DeviceDeleted{DeviceID: 7})
	if err := consumer.handle(context.Background(), envelope); err != nil {
		t.Fatalf("handler returned %v", err)
	}

	if mappings.Count() != 0 {
		t.Fatalf("mapping should be gone")
	}
	if readings.Count() != 1 {
		t.Fatalf("only device 7 readings should be dropped, have %d", readings.Count())
	}
}

func TestReadingForUnmappedDeviceIsDroppedNotRequeued(t *testing.T) {
	readings := memory.NewReadingStore()
	consumer := ReadingConsumer{
		Mappings:  memory.NewMappingStore(),
		Readings:  readings,
		Limits:    fakeLimits{limit: 10},
		Publisher: &recordingPublisher{},
	}

	if err := consumer.handle(context.Background(), readingEnvelope(t, 7, 5)); err != nil {
		t.Fatalf("unmapped reading must be dropped with nil, got %v", err)
	}
	if readings.Count() != 0 {
		t.Fatalf("unmapped reading must not be persisted")
	}
}

func TestReadingAboveLimitRaisesExactlyOneAlert(t *testing.T) {
	mappings := memory.NewMappingStore()
	_ = mappings.Create(context.Background(), entities.DeviceMapping{MappingKey: "k", DeviceID: 7, OwnerID: 1})
	readings := memory.NewReadingStore()
	publisher := &recordingPublisher{}
	consumer := ReadingConsumer{
		Mappings:  mappings,
		Readings:  readings,
		Limits:    fakeLimits{limit: 3},
		Publisher: publisher,
	}

	if err := consumer.handle(context.Background(), readingEnvelope(t, 7, 4.2)); err != nil {
		t.Fatalf("handler returned %v", err)
	}

	if len(publisher.envelopes) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(publisher.envelopes))
	}
	published := publisher.envelopes[0]
	if published.topic != events.TopicAlertEvents || published.envelope.Type != events.TypeOverconsumptionAlert {
		t.Fatalf("unexpected publish %s/%s", published.topic, published.envelope.Type)
	}
	var alert events.OverconsumptionAlert
	if err := published.envelope.Payload(&alert); err != nil {
		t.Fatalf("decode alert: %v", err)
	}
	if alert.OwnerID != 1 || alert.DeviceID != 7 || alert.Value != 4.2 || alert.Threshold != 3 {
		t.Fatalf("alert payload wrong: %+v", alert)
	}
	if readings.Count() != 1 {
		t.Fatalf("reading must be persisted alongside the alert")
	}
}

func TestReadingAtLimitRaisesNoAlert(t *testing.T) {
	mappings := memory.NewMappingStore()
	_ = mappings.Create(context.Background(), entities.DeviceMapping{MappingKey: "k", DeviceID: 7, OwnerID: 1})
	readings := memory.NewReadingStore()
	publisher := &recordingPublisher{}
	consumer := ReadingConsumer{
		Mappings:  mappings,
		Readings:  readings,
		Limits:    fakeLimits{limit: 3},
		Publisher: publisher,
	}

	if err := consumer.handle(context.Background(), readingEnvelope(t, 7, 3)); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if len(publisher.envelopes) != 0 {
		t.Fatalf("value == limit must not alert")
	}
	if readings.Count() != 1 {
		t.Fatalf("reading must still be persisted")
	}
}

func TestLimitFetchFailureSkipsCheckButPersists(t *testing.T) {
	mappings := memory.NewMappingStore()
	_ = mappings.Create(context.Background(), entities.DeviceMapping{MappingKey: "k", DeviceID: 7, OwnerID: 1})
	readings := memory.NewReadingStore()
	publisher := &recordingPublisher{}
	consumer := ReadingConsumer{
		Mappings:  mappings,
		Readings:  readings,
		Limits:    fakeLimits{err: errors.New("registry unreachable")},
		Publisher: publisher,
	}

	if err := consumer.handle(context.Background(), readingEnvelope(t, 7, 99)); err != nil {
		t.Fatalf("limit fetch failure must not fail the handler, got %v", err)
	}
	if len(publisher.envelopes) != 0 {
		t.Fatalf("no alert without a threshold to compare against")
	}
	if readings.Count() != 1 {
		t.Fatalf("reading must be persisted despite the outage")
	}
}
