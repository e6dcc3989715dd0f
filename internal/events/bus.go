package events

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"jukebox/internal/logging"
)

// SubscriptionID identifies a single subscription for later removal.
type SubscriptionID string

// Bus is a synchronous event bus. Handlers run in subscription order on the
// publishing goroutine; a handler returning Stop consumes the event and the
// remaining handlers are skipped.
//
// The bus is safe for concurrent use, but slow handlers block Publish.
type Bus struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[Type][]subscription
	closed      bool

	idCounter uint64
}

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// NewBus creates an event bus. A nil logger disables bus logging.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger:      logging.NewComponentLogger(logger, "events"),
		subscribers: make(map[Type][]subscription),
	}
}

// Subscribe registers a handler for one event type. The same handler may be
// registered more than once; each registration gets its own ID.
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	if handler == nil {
		panic("events: nil handler")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("events: subscribe on closed bus")
	}

	id := SubscriptionID(fmt.Sprintf("sub-%d", atomic.AddUint64(&b.idCounter, 1)))
	b.subscribers[eventType] = append(b.subscribers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a subscription. Unknown IDs are a no-op.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to its subscribers in subscription order. A
// handler returning Stop consumes the event. Publishing on a closed bus is
// a no-op. A panicking handler is logged and treated as Propagate.
func (b *Bus) Publish(event Event) {
	if event == nil {
		return
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]subscription, len(b.subscribers[event.Type()]))
	copy(subs, b.subscribers[event.Type()])
	b.mu.RUnlock()

	b.logger.Debug("publishing event",
		logging.String("event_type", string(event.Type())),
		logging.Int("handler_count", len(subs)))

	for _, sub := range subs {
		if b.callHandler(sub.handler, event) == Stop {
			b.logger.Debug("event consumed",
				logging.String("event_type", string(event.Type())),
				logging.String("subscription", string(sub.id)))
			return
		}
	}
}

func (b *Bus) callHandler(handler Handler, event Event) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				logging.String("event_type", string(event.Type())),
				logging.Any("panic", r))
			result = Propagate
		}
	}()
	return handler(event)
}

// HasSubscribers reports whether anyone is listening for an event type.
func (b *Bus) HasSubscribers(eventType Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[eventType]) > 0
}

// SubscriberCount returns the total number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscribers {
		count += len(subs)
	}
	return count
}

// Close clears every subscription. Publishing after Close is a no-op;
// subscribing panics.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("events: bus already closed")
	}
	b.closed = true
	b.subscribers = make(map[Type][]subscription)
	return nil
}
