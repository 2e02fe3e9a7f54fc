package devicesimulator

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"wattline/contexts/telemetry/device-simulator/ports"
	"wattline/internal/shared/events"
)

const senderName = "device-simulator"

// Simulator publishes a consumption reading per registered device every
// Interval. Each device gets a stable random base load; the emitted value
// shapes that load by hour of day with random variation.
type Simulator struct {
	Catalog   ports.DeviceCatalog
	Publisher ports.EventPublisher
	Interval  time.Duration
	Logger    *slog.Logger
	Rand      *rand.Rand
	Now       func() time.Time

	baseLoads map[int64]float64
}

// Run emits readings until ctx is cancelled. A registry outage skips the
// tick; the loop never exits on error.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.Tick(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick fetches the device list and publishes one reading per device.
func (s *Simulator) Tick(ctx context.Context) {
	logger := s.logger()

	devices, err := s.Catalog.ListDevices(ctx)
	if err != nil {
		logger.Error("device catalog fetch failed, tick skipped",
			"event", "simulator_catalog_fetch_failed",
			"module", "telemetry/device-simulator",
			"layer", "worker",
			"error", err,
		)
		return
	}

	now := s.now()
	for _, device := range devices {
		value := s.GenerateReading(device.DeviceID, now)
		envelope, err := events.New(events.TypeConsumptionReading, senderName, events.ConsumptionReading{
			DeviceID:  device.DeviceID,
			OwnerID:   device.OwnerID,
			Value:     value,
			Timestamp: now.UTC(),
		})
		if err == nil {
			err = s.Publisher.Publish(ctx, events.TopicTelemetryReadings, envelope)
		}
		if err != nil {
			logger.Error("reading publish failed",
				"event", "simulator_publish_failed",
				"module", "telemetry/device-simulator",
				"layer", "worker",
				"device_id", device.DeviceID,
				"error", err,
			)
			continue
		}

		logger.Debug("reading published",
			"event", "simulator_reading_published",
			"module", "telemetry/device-simulator",
			"layer", "worker",
			"device_id", device.DeviceID,
			"value", value,
		)
	}
}

// GenerateReading produces a consumption value in kWh for the device at
// the given time. Values are floored at 0.1 and rounded to three decimals.
func (s *Simulator) GenerateReading(deviceID int64, at time.Time) float64 {
	base := s.baseLoad(deviceID)
	variation := 0.8 + s.rng().Float64()*0.4
	value := base * hourlyMultiplier(at.Hour()) * variation
	if value < 0.1 {
		value = 0.1
	}
	return math.Round(value*1000) / 1000
}

// hourlyMultiplier shapes load by time of day: overnight trough, morning
// ramp, working hours, evening peak.
func hourlyMultiplier(hour int) float64 {
	switch {
	case hour < 6:
		return 0.3
	case hour < 9:
		return 0.6
	case hour < 17:
		return 0.8
	case hour < 21:
		return 1.2
	default:
		return 0.5
	}
}

// baseLoad assigns each device a stable load between 0.5 and 2.0 kWh on
// first sight.
func (s *Simulator) baseLoad(deviceID int64) float64 {
	if s.baseLoads == nil {
		s.baseLoads = make(map[int64]float64)
	}
	load, ok := s.baseLoads[deviceID]
	if !ok {
		load = 0.5 + s.rng().Float64()*1.5
		s.baseLoads[deviceID] = load
	}
	return load
}

func (s *Simulator) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.Rand
}

func (s *Simulator) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Simulator) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
