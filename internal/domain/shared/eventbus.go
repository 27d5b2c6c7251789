package shared

import "context"

// EventHandler reacts to events relayed from the outbox after the
// transaction that raised them has committed. Delivery is at least once, so
// handlers must tolerate seeing the same EventID twice.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types to receive; empty means all
	EventTypes() []string
}

// EventPublisher delivers events to a downstream sink such as the
// in-process bus or a broker topic
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}
