package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"showcase/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventScrolled        = domain.EventScrolled
	EventModeChanged     = domain.EventModeChanged
	EventIndexChanged    = domain.EventIndexChanged
	EventEngineAttached  = domain.EventEngineAttached
	EventEngineDetached  = domain.EventEngineDetached
	EventContentReloaded = domain.EventContentReloaded
	EventError           = domain.EventError
)

// Re-export domain event types
type ScrolledEvent = domain.ScrolledEvent
type ModeChangedEvent = domain.ModeChangedEvent
type IndexChangedEvent = domain.IndexChangedEvent
type EngineAttachedEvent = domain.EngineAttachedEvent
type EngineDetachedEvent = domain.EngineDetachedEvent
type ContentReloadedEvent = domain.ContentReloadedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	HandlerCount(eventType EventType) int
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus dispatches synchronously on the caller's goroutine. All publishers live on
// the Bubble Tea update loop, so handlers observe events in publish order.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	log      *zap.Logger
}

// New creates a new event bus
func New(log *zap.Logger) EventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		log:      log,
	}
}

// Publish delivers an event to every subscriber of its type
func (b *bus) Publish(event DomainEvent) {
	// Scroll ticks are far too frequent to log
	if event.Type() != EventScrolled {
		b.log.Debug("EventBus: publishing event", zap.String("type", string(event.Type())))
	}

	b.mu.RLock()
	handlers := b.handlers[event.Type()]
	// Copy so handlers may unsubscribe while being dispatched
	handlersCopy := make([]subscription, len(handlers))
	copy(handlersCopy, handlers)
	b.mu.RUnlock()

	for _, sub := range handlersCopy {
		b.call(sub.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type.
// The returned function unsubscribes and is safe to call more than once.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			handlers := b.handlers[eventType]
			for i, sub := range handlers {
				if sub.id == id {
					b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
					break
				}
			}
			if len(b.handlers[eventType]) == 0 {
				delete(b.handlers, eventType)
			}
		})
	}
}

// HandlerCount returns how many handlers are subscribed to an event type
func (b *bus) HandlerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
