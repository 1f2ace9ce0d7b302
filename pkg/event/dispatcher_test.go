package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pulsefeed/post-events/pkg/event"
)

func TestDispatchInvokesEveryRegisteredHandler(t *testing.T) {
	d := event.NewDispatcher()

	var calls []string
	d.Subscribe(event.HandlerFunc(func(context.Context, event.Event) error {
		calls = append(calls, "first")
		return nil
	}), event.PostCreated)
	d.Subscribe(event.HandlerFunc(func(context.Context, event.Event) error {
		calls = append(calls, "second")
		return nil
	}), event.PostCreated)

	if err := d.Dispatch(context.Background(), event.Event{Type: event.PostCreated}); err != nil {
		t.Fatalf("Dispatcher.Dispatch() error = %v", err)
	}

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("Dispatcher.Dispatch() calls = %v, want [first second]", calls)
	}
}

func TestDispatchStopsOnFirstFailure(t *testing.T) {
	d := event.NewDispatcher()
	wantErr := errors.New("apply failed")

	d.Register(map[event.EventType][]event.Handler{
		event.PostDeleted: {
			event.HandlerFunc(func(context.Context, event.Event) error { return wantErr }),
			event.HandlerFunc(func(context.Context, event.Event) error {
				t.Error("handler after a failure should not run")
				return nil
			}),
		},
	})

	err := d.Dispatch(context.Background(), event.Event{Type: event.PostDeleted})
	if !errors.Is(err, wantErr) {
		t.Errorf("Dispatcher.Dispatch() error = %v, want %v", err, wantErr)
	}
}

func TestDispatchIgnoresUnknownTypes(t *testing.T) {
	d := event.NewDispatcher()
	d.Subscribe(event.HandlerFunc(func(context.Context, event.Event) error {
		t.Error("handler for a different type should not run")
		return nil
	}), event.PostCreated)

	if err := d.Dispatch(context.Background(), event.Event{Type: event.PostDeleted}); err != nil {
		t.Errorf("Dispatcher.Dispatch() error = %v, want nil", err)
	}
}
