package events

import (
	"sync"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

var _ ports.EventBus = (*Bus)(nil)

// Bus fans published events out to subscribers. Every subscriber owns an
// unbounded FIFO queue drained by its own goroutine, so Publish never blocks
// on a slow handler and a panicking handler does not affect the others.
type Bus struct {
	closed      bool
	mu          sync.Mutex
	nextID      int
	subscribers []*subscriber
	wg          sync.WaitGroup
}

type subscriber struct {
	handler func(domain.Event)
	id      int
	mu      sync.Mutex
	name    string
	queue   []domain.Event
	stopped bool
	wake    chan struct{}
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler and returns a function that removes it.
// Events already queued for the subscriber are dropped on unsubscribe.
func (b *Bus) Subscribe(name string, handler func(domain.Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	b.nextID++
	sub := &subscriber{
		handler: handler,
		id:      b.nextID,
		name:    name,
		wake:    make(chan struct{}, 1),
	}
	b.subscribers = append(b.subscribers, sub)

	b.wg.Add(1)
	go b.dispatch(sub)

	logging.Logger.Debug("Subscriber registered", "name", name, "id", sub.id)

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(sub) })
	}
}

func (b *Bus) unsubscribe(sub *subscriber) {
	b.mu.Lock()
	for i, s := range b.subscribers {
		if s == sub {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	sub.mu.Lock()
	sub.stopped = true
	sub.queue = nil
	sub.mu.Unlock()
	sub.signal()

	logging.Logger.Debug("Subscriber removed", "name", sub.name, "id", sub.id)
}

// Publish appends events to every subscriber queue. Events published in one
// call are seen contiguously and in order by each subscriber.
func (b *Bus) Publish(events ...domain.Event) {
	if len(events) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, sub := range b.subscribers {
		sub.mu.Lock()
		if !sub.stopped {
			sub.queue = append(sub.queue, events...)
		}
		sub.mu.Unlock()
		sub.signal()
	}
}

// Close delivers what is already queued, then stops every dispatcher.
// Publish and Subscribe are no-ops afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := b.subscribers
	b.subscribers = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.stopped = true
		sub.mu.Unlock()
		sub.signal()
	}
	b.wg.Wait()
}

func (s *subscriber) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// dispatch drains the queue until the subscriber is stopped and its queue is empty
func (b *Bus) dispatch(sub *subscriber) {
	defer b.wg.Done()

	for range sub.wake {
		for {
			sub.mu.Lock()
			if len(sub.queue) == 0 {
				stopped := sub.stopped
				sub.mu.Unlock()
				if stopped {
					return
				}
				break
			}
			event := sub.queue[0]
			sub.queue[0] = domain.Event{}
			sub.queue = sub.queue[1:]
			sub.mu.Unlock()

			b.deliver(sub, event)
		}
	}
}

func (b *Bus) deliver(sub *subscriber, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Event handler panicked",
				"subscriber", sub.name, "kind", event.Kind, "panic", r)
		}
	}()
	sub.handler(event)
}
