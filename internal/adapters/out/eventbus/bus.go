// Package eventbus provides an in-process implementation of the
// ports.EventPublisher contract. Outbox rows relayed through the bus are
// fanned out synchronously to handlers registered by event name, so a
// handler error surfaces to the relay and the row stays unpublished for a
// later retry.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"hatod/internal/core/ports"
)

// Handler consumes one relayed event. Returning an error keeps the event
// unacknowledged; the relay will deliver it again.
type Handler func(ctx context.Context, event ports.PublishedEvent) error

// Bus is a synchronous in-process event bus. Handlers registered for an
// event name run in registration order; handlers registered for every event
// run after the named ones. Safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[string][]Handler
	allHandlers []Handler
	logger      *slog.Logger
}

// NewBus creates an empty bus. A nil logger falls back to slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for one event name, e.g. "order.assigned".
func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[name] = append(b.handlers[name], handler)
}

// SubscribeAll registers a handler for every event name.
func (b *Bus) SubscribeAll(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.allHandlers = append(b.allHandlers, handler)
}

// Publish delivers the event to every matching handler synchronously.
// The first handler error stops delivery and is returned, so the caller can
// keep the outbox row unpublished. Events with no subscribers are dropped
// silently; an empty marketplace deployment is not an error.
func (b *Bus) Publish(ctx context.Context, event ports.PublishedEvent) error {
	b.mu.RLock()
	named := b.handlers[event.Name]
	all := b.allHandlers
	b.mu.RUnlock()

	for _, handler := range named {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"event", event.Name,
				"eventId", event.EventID,
				"orderId", event.OrderID.String(),
				"error", err)
			return fmt.Errorf("handle %s event %d: %w", event.Name, event.EventID, err)
		}
	}

	for _, handler := range all {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"event", event.Name,
				"eventId", event.EventID,
				"orderId", event.OrderID.String(),
				"error", err)
			return fmt.Errorf("handle %s event %d: %w", event.Name, event.EventID, err)
		}
	}

	return nil
}
