package ecs

import "reflect"

// EventBus gives systems a decoupled signalling channel alongside component
// data. Handlers are keyed by the event's concrete type and invoked
// synchronously, in subscription order.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Subscribe registers handler for events of type E published on w's bus.
func Subscribe[E any](w *World, handler func(E)) {
	bus := w.events
	t := reflect.TypeFor[E]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish delivers event to every handler subscribed for type E, in
// subscription order. Publishing a type with no subscribers is a no-op.
func Publish[E any](w *World, event E) {
	bus := w.events
	t := reflect.TypeFor[E]()
	for _, h := range bus.handlers[t] {
		h.(func(E))(event)
	}
}
