package broker

import (
	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/pulsefeed/post-events/pkg/net/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageFromEvent returns a message suitable for pub/sub methods.
// The event body is already JSON, it travels as the message body unchanged.
func MessageFromEvent(e event.Event) rabbitmq.Message {
	return rabbitmq.Message{
		Body:        e.Body,
		ContentType: rabbitmq.ContentTypeJson,
		Timestamp:   e.Timestamp,
		Route:       RouteFromType(e.Type),
	}
}

// RouteFromType maps an event type to its route on the post_events exchange.
// The routing key equals the event type.
func RouteFromType(eType event.EventType) rabbitmq.Route {
	return rabbitmq.Route{
		ExchangeName: rabbitmq.ExchangeName,
		ExchangeType: amqp.ExchangeTopic,
		RoutingKey:   string(eType),
	}
}

// EventFromMessage restores an event from a delivered message, deriving the
// type from the routing key the message arrived with.
func EventFromMessage(msg rabbitmq.Message) event.Event {
	return event.Event{
		Type:      event.EventType(msg.RoutingKey),
		Body:      msg.Body,
		Timestamp: msg.Timestamp,
	}
}
