package ingestionrouter

import (
	"context"
	"sync"
	"testing"

	"wattline/internal/platform/messaging"
	"wattline/internal/shared/events"
)

func TestRoundRobinDistributionIsBalanced(t *testing.T) {
	bus := messaging.NewMemory(nil)
	router := &Router{Bus: bus, ReplicaCount: 3}
	ctx := context.Background()
	if err := router.Start(ctx); err != nil {
		t.Fatalf("start router: %v", err)
	}

	var mu sync.Mutex
	received := make(map[string]int)
	for replica := 1; replica <= 3; replica++ {
		key := events.ReplicaKey(replica)
		err := bus.SubscribeKeyed(ctx, events.TopicTelemetryIngest, key, func(context.Context, events.Envelope) error {
			mu.Lock()
			received[key]++
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("subscribe %s: %v", key, err)
		}
	}

	const total = 10
	for i := 0; i < total; i++ {
		envelope, err := events.New(events.TypeConsumptionReading, "device-simulator", events.ConsumptionReading{DeviceID: int64(i)})
		if err != nil {
			t.Fatalf("build envelope: %v", err)
		}
		if err := bus.Publish(ctx, events.TopicTelemetryReadings, envelope); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	sum := 0
	for replica := 1; replica <= 3; replica++ {
		count := received[events.ReplicaKey(replica)]
		sum += count
		// 10 readings over 3 replicas: every replica gets 3 or 4.
		if count < total/3 || count > total/3+1 {
			t.Fatalf("replica %d received %d, want floor or ceil of %d/3", replica, count, total)
		}
	}
	if sum != total {
		t.Fatalf("each reading must land on exactly one replica, delivered %d of %d", sum, total)
	}
}

func TestRouterForwardsEnvelopeUnchanged(t *testing.T) {
	bus := messaging.NewMemory(nil)
	router := &Router{Bus: bus, ReplicaCount: 1}
	ctx := context.Background()
	if err := router.Start(ctx); err != nil {
		t.Fatalf("start router: %v", err)
	}

	var got events.Envelope
	err := bus.SubscribeKeyed(ctx, events.TopicTelemetryIngest, events.ReplicaKey(1), func(_ context.Context, envelope events.Envelope) error {
		got = envelope
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sent, err := events.New(events.TypeConsumptionReading, "device-simulator", events.ConsumptionReading{DeviceID: 7, OwnerID: 1, Value: 2.5})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if err := bus.Publish(ctx, events.TopicTelemetryReadings, sent); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got.Type != sent.Type || got.Sender != sent.Sender || string(got.Data) != string(sent.Data) {
		t.Fatalf("envelope altered in transit: %+v vs %+v", got, sent)
	}
}

func TestNextReplicaWrapsAndFloorsCount(t *testing.T) {
	router := &Router{ReplicaCount: 2}
	want := []int{1, 2, 1, 2}
	for i, expected := range want {
		if got := router.nextReplica(); got != expected {
			t.Fatalf("call %d: got replica %d, want %d", i, got, expected)
		}
	}

	degenerate := &Router{ReplicaCount: 0}
	if got := degenerate.nextReplica(); got != 1 {
		t.Fatalf("zero replica count must fall back to 1, got %d", got)
	}
}
