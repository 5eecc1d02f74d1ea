package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Wutche/payrail/pkg/domain/events"
)

// SimpleEventBus is a synchronous in-memory Bus. Handlers run on the
// publisher's goroutine in subscription order.
type SimpleEventBus struct {
	handlers map[string][]func(context.Context, events.Event)
	mu       sync.RWMutex
}

// NewSimpleEventBus creates an empty in-memory bus.
func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[string][]func(context.Context, events.Event))}
}

// Publish delivers the event to every handler subscribed to its type.
func (b *SimpleEventBus) Publish(ctx context.Context, event events.Event) error {
	slog.Debug("EventBus.Publish", "event_type", event.Type(), "concrete_type", fmt.Sprintf("%T", event))
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[event.Type()] {
		handler(ctx, event)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (b *SimpleEventBus) Subscribe(eventType string, handler func(context.Context, events.Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
