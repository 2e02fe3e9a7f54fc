package messaging

import (
	"context"
	"errors"
	"testing"

	"wattline/internal/shared/events"
)

func testEnvelope(t *testing.T) events.Envelope {
	t.Helper()
	envelope, err := events.New("test_event", "test", map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	return envelope
}

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	bus := NewMemory(nil)
	ctx := context.Background()

	counts := make([]int, 2)
	for i := range counts {
		i := i
		if err := bus.Subscribe(ctx, "topic-a", func(context.Context, events.Envelope) error {
			counts[i]++
			return nil
		}); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}

	if err := bus.Publish(ctx, "topic-a", testEnvelope(t)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	for i, count := range counts {
		if count != 1 {
			t.Fatalf("subscriber %d received %d deliveries", i, count)
		}
	}
}

func TestKeyedDeliveryMatchesRoutingKeyOnly(t *testing.T) {
	bus := NewMemory(nil)
	ctx := context.Background()

	received := make(map[string]int)
	for _, key := range []string{"replica1", "replica2"} {
		key := key
		if err := bus.SubscribeKeyed(ctx, "topic-b", key, func(context.Context, events.Envelope) error {
			received[key]++
			return nil
		}); err != nil {
			t.Fatalf("subscribe %s: %v", key, err)
		}
	}

	if err := bus.PublishKeyed(ctx, "topic-b", "replica2", testEnvelope(t)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if received["replica1"] != 0 || received["replica2"] != 1 {
		t.Fatalf("keyed routing leaked: %v", received)
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	bus := NewMemory(nil)
	ctx := context.Background()

	delivered := 0
	if err := bus.Subscribe(ctx, "topic-a", func(context.Context, events.Envelope) error {
		delivered++
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "topic-b", testEnvelope(t)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if delivered != 0 {
		t.Fatalf("subscriber received a message from another topic")
	}
}

func TestHandlerErrorDoesNotStopOtherSubscribers(t *testing.T) {
	bus := NewMemory(nil)
	ctx := context.Background()

	if err := bus.Subscribe(ctx, "topic-a", func(context.Context, events.Envelope) error {
		return errors.New("boom")
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	delivered := 0
	if err := bus.Subscribe(ctx, "topic-a", func(context.Context, events.Envelope) error {
		delivered++
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "topic-a", testEnvelope(t)); err != nil {
		t.Fatalf("publish must not surface handler errors, got %v", err)
	}
	if delivered != 1 {
		t.Fatalf("second subscriber missed the delivery")
	}
}
