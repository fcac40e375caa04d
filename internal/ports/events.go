package ports

import "github.com/renato0307/prmonitor/internal/domain"

// EventPublisher is the producer side of the event bus
type EventPublisher interface {
	Publish(events ...domain.Event)
}

// EventSubscriber is the consumer side of the event bus
type EventSubscriber interface {
	Subscribe(name string, handler func(domain.Event)) (unsubscribe func())
}

// EventBus is the composite interface
type EventBus interface {
	EventPublisher
	EventSubscriber
}
