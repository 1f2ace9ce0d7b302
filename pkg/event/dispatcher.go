package event

import "context"

// Dispatcher routes events to the handlers registered for their type.
// Registration is not thread safe and must happen before consumption starts.
type Dispatcher struct {
	handlers map[EventType][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventType][]Handler),
	}
}

// Register merges a per-type handler map, typically a component's
// EventHandlers().
func (d *Dispatcher) Register(handlers map[EventType][]Handler) {
	for eType, hs := range handlers {
		d.handlers[eType] = append(d.handlers[eType], hs...)
	}
}

func (d *Dispatcher) Subscribe(handler Handler, eTypes ...EventType) {
	for _, eType := range eTypes {
		d.handlers[eType] = append(d.handlers[eType], handler)
	}
}

// Dispatch applies e to every handler registered for its type, in
// registration order. It stops at the first failure so the delivery stays
// unacknowledged and can be redelivered.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) error {
	for _, handler := range d.handlers[e.Type] {
		if err := handler.Handle(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
