package eventbus

import (
	"runtime/debug"
	"sync"

	log "github.com/sirupsen/logrus"

	"invtrack/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCollectionLoaded     = domain.EventCollectionLoaded
	EventCollectionLoadFailed = domain.EventCollectionLoadFailed
	EventProductCreated       = domain.EventProductCreated
	EventProductCreateFailed  = domain.EventProductCreateFailed
	EventProductDeleted       = domain.EventProductDeleted
	EventProductDeleteFailed  = domain.EventProductDeleteFailed
	EventDeleteDeclined       = domain.EventDeleteDeclined
	EventValidationFailed     = domain.EventValidationFailed
)

// Re-export domain event types
type CollectionLoadedEvent = domain.CollectionLoadedEvent
type CollectionLoadFailedEvent = domain.CollectionLoadFailedEvent
type ProductCreatedEvent = domain.ProductCreatedEvent
type ProductCreateFailedEvent = domain.ProductCreateFailedEvent
type ProductDeletedEvent = domain.ProductDeletedEvent
type ProductDeleteFailedEvent = domain.ProductDeleteFailedEvent
type DeleteDeclinedEvent = domain.DeleteDeclinedEvent
type ValidationFailedEvent = domain.ValidationFailedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. It never blocks; a full queue drops the event.
func (b *bus) Publish(event DomainEvent) {
	log.WithField("event", event.Type()).Debug("EventBus: publishing")

	select {
	case b.eventChan <- event:
	default:
		log.WithField("event", event.Type()).Warn("Event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Queued events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without the lock held
			subsCopy := make([]subscription, len(subs))
			copy(subsCopy, subs)
			b.mu.RUnlock()

			for _, s := range subsCopy {
				b.call(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// call runs a handler and recovers its panics
func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
