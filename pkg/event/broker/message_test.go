package broker_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/pulsefeed/post-events/pkg/event/broker"
	"github.com/pulsefeed/post-events/pkg/net/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
)

func TestRouteFromType(t *testing.T) {
	testCases := []struct {
		desc  string
		eType event.EventType
		want  rabbitmq.Route
	}{
		{
			desc:  "Test if created events are routed with their own key",
			eType: event.PostCreated,
			want: rabbitmq.Route{
				ExchangeName: "post_events",
				ExchangeType: amqp.ExchangeTopic,
				RoutingKey:   "post.created",
			},
		},
		{
			desc:  "Test if deleted events are routed with their own key",
			eType: event.PostDeleted,
			want: rabbitmq.Route{
				ExchangeName: "post_events",
				ExchangeType: amqp.ExchangeTopic,
				RoutingKey:   "post.deleted",
			},
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got := broker.RouteFromType(tC.eType)
			if !cmp.Equal(got, tC.want) {
				t.Errorf("RouteFromType():\n%s", cmp.Diff(tC.want, got))
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	e := event.Event{
		Type:      event.PostDeleted,
		Body:      []byte(`{"postId":"p1","userId":"u1","mediaIds":["m1"]}`),
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	got := broker.EventFromMessage(broker.MessageFromEvent(e))
	if !cmp.Equal(got, e) {
		t.Errorf("Event changed in message round trip:\n%s", cmp.Diff(e, got))
	}
}
