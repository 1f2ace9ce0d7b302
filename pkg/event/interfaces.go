package event

import (
	"context"
	"io"
)

type Broker interface {
	Publisher
	Subscriber
	io.Closer
}

type Publisher interface {
	// Publish is fire-and-forget: no broker receipt is awaited.
	Publish(context.Context, Event) error

	// ResilientPublish returns only a queueing error and retries delivery
	// in the background until it succeeds.
	ResilientPublish(Event) error
}

type Subscriber interface {
	// Subscribe invokes handler for every event delivered with the given
	// type. A delivery is acknowledged only if handler returns nil.
	Subscribe(ctx context.Context, eType EventType, handler HandlerFunc) error
}

// Handler applies an event to a component's local state.
type Handler interface {
	Handle(context.Context, Event) error
}

// HandlerFunc is invoked for each received event.
type HandlerFunc func(context.Context, Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}
