package devicesimulator

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"wattline/contexts/telemetry/device-simulator/ports"
	"wattline/internal/shared/events"
)

type fakeCatalog struct {
	devices []ports.SimulatedDevice
	err     error
}

func (f fakeCatalog) ListDevices(context.Context) ([]ports.SimulatedDevice, error) {
	return f.devices, f.err
}

type recordingPublisher struct {
	envelopes []events.Envelope
	topics    []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, envelope events.Envelope) error {
	p.topics = append(p.topics, topic)
	p.envelopes = append(p.envelopes, envelope)
	return nil
}

func TestGenerateReadingStaysWithinShapeBounds(t *testing.T) {
	simulator := &Simulator{Rand: rand.New(rand.NewSource(1))}

	for hour := 0; hour < 24; hour++ {
		at := time.Date(2026, time.March, 1, hour, 0, 0, 0, time.UTC)
		for i := 0; i < 50; i++ {
			value := simulator.GenerateReading(42, at)
			if value < 0.1 {
				t.Fatalf("hour %d: value %v below floor", hour, value)
			}
			// base <= 2.0, multiplier <= 1.2, variation <= 1.2
			if value > 2.0*1.2*1.2 {
				t.Fatalf("hour %d: value %v above maximum possible load", hour, value)
			}
			if rounded := math.Round(value*1000) / 1000; rounded != value {
				t.Fatalf("value %v not rounded to three decimals", value)
			}
		}
	}
}

func TestBaseLoadIsStablePerDevice(t *testing.T) {
	simulator := &Simulator{Rand: rand.New(rand.NewSource(2))}
	first := simulator.baseLoad(7)
	if first < 0.5 || first > 2.0 {
		t.Fatalf("base load %v out of range", first)
	}
	if again := simulator.baseLoad(7); again != first {
		t.Fatalf("base load changed between calls: %v vs %v", again, first)
	}
}

func TestHourlyMultiplierShape(t *testing.T) {
	cases := []struct {
		hour int
		want float64
	}{
		{0, 0.3}, {5, 0.3},
		{6, 0.6}, {8, 0.6},
		{9, 0.8}, {16, 0.8},
		{17, 1.2}, {20, 1.2},
		{21, 0.5}, {23, 0.5},
	}
	for _, tc := range cases {
		if got := hourlyMultiplier(tc.hour); got != tc.want {
			t.Fatalf("hour %d: got %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestTickPublishesOneReadingPerDevice(t *testing.T) {
	publisher := &recordingPublisher{}
	simulator := &Simulator{
		Catalog: fakeCatalog{devices: []ports.SimulatedDevice{
			{DeviceID: 1, OwnerID: 10},
			{DeviceID: 2, OwnerID: 10},
		}},
		Publisher: publisher,
		Rand:      rand.New(rand.NewSource(3)),
		Now:       func() time.Time { return time.Date(2026, time.March, 1, 18, 0, 0, 0, time.UTC) },
	}

	simulator.Tick(context.Background())

	if len(publisher.envelopes) != 2 {
		t.Fatalf("expected one reading per device, got %d", len(publisher.envelopes))
	}
	for i, envelope := range publisher.envelopes {
		if publisher.topics[i] != events.TopicTelemetryReadings {
			t.Fatalf("published on wrong topic %s", publisher.topics[i])
		}
		if envelope.Type != events.TypeConsumptionReading {
			t.Fatalf("unexpected event type %s", envelope.Type)
		}
		var payload events.ConsumptionReading
		if err := envelope.Payload(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.OwnerID != 10 || payload.Value < 0.1 {
			t.Fatalf("payload wrong: %+v", payload)
		}
	}
}

func TestTickSkippedOnCatalogOutage(t *testing.T) {
	publisher := &recordingPublisher{}
	simulator := &Simulator{
		Catalog:   fakeCatalog{err: context.DeadlineExceeded},
		Publisher: publisher,
	}

	simulator.Tick(context.Background())

	if len(publisher.envelopes) != 0 {
		t.Fatalf("catalog outage must skip the tick")
	}
}
