package messaging

import (
	"context"
	"log/slog"
	"sync"

	"wattline/internal/shared/events"
)

// Memory is the in-process bus used by tests and local bootstrap. Dispatch
// is synchronous: Publish returns after every matching handler ran. Handler
// errors are logged, not redelivered; redelivery semantics belong to the
// broker adapter.
type Memory struct {
	mu     sync.RWMutex
	fanout map[string][]Handler
	keyed  map[string]map[string][]Handler
	logger *slog.Logger
}

func NewMemory(logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		fanout: make(map[string][]Handler),
		keyed:  make(map[string]map[string][]Handler),
		logger: logger,
	}
}

func (m *Memory) Publish(ctx context.Context, topic string, envelope events.Envelope) error {
	m.mu.RLock()
	handlers := append([]Handler(nil), m.fanout[topic]...)
	m.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, envelope); err != nil {
			m.logger.Error("in-process handler failed",
				"event", "bus_handler_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_type", envelope.Type,
				"error", err.Error(),
			)
		}
	}
	return nil
}

func (m *Memory) PublishKeyed(ctx context.Context, topic string, key string, envelope events.Envelope) error {
	m.mu.RLock()
	var handlers []Handler
	if byKey, ok := m.keyed[topic]; ok {
		handlers = append(handlers, byKey[key]...)
	}
	m.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, envelope); err != nil {
			m.logger.Error("in-process handler failed",
				"event", "bus_handler_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"routing_key", key,
				"event_type", envelope.Type,
				"error", err.Error(),
			)
		}
	}
	return nil
}

func (m *Memory) Subscribe(_ context.Context, topic string, handler Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fanout[topic] = append(m.fanout[topic], handler)
	return nil
}

func (m *Memory) SubscribeKeyed(_ context.Context, topic string, key string, handler Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keyed[topic] == nil {
		m.keyed[topic] = make(map[string][]Handler)
	}
	m.keyed[topic][key] = append(m.keyed[topic][key], handler)
	return nil
}
