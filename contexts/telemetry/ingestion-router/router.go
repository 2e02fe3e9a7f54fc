package ingestionrouter

import (
	"context"
	"log/slog"
	"sync/atomic"

	"wattline/internal/shared/events"
)

// EventHandler matches the platform bus handler signature.
type EventHandler = func(ctx context.Context, envelope events.Envelope) error

type Bus interface {
	PublishKeyed(ctx context.Context, topic string, key string, envelope events.Envelope) error
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
}

// Router assigns each incoming reading to the next replica in rotation.
// The counter lives in memory only; a restart resets the rotation, which
// is fine because shard assignment carries no state between readings.
type Router struct {
	Bus          Bus
	ReplicaCount int
	Logger       *slog.Logger

	counter atomic.Uint64
}

func (r *Router) Start(ctx context.Context) error {
	return r.Bus.Subscribe(ctx, events.TopicTelemetryReadings, r.route)
}

func (r *Router) route(ctx context.Context, envelope events.Envelope) error {
	replica := r.nextReplica()
	key := events.ReplicaKey(replica)

	if err := r.Bus.PublishKeyed(ctx, events.TopicTelemetryIngest, key, envelope); err != nil {
		return err
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("reading routed",
		"event", "router_reading_forwarded",
		"module", "telemetry/ingestion-router",
		"layer", "worker",
		"routing_key", key,
	)
	return nil
}

// nextReplica returns replica numbers 1..ReplicaCount in rotation.
func (r *Router) nextReplica() int {
	count := r.ReplicaCount
	if count < 1 {
		count = 1
	}
	n := r.counter.Add(1) - 1
	return int(n%uint64(count)) + 1
}
