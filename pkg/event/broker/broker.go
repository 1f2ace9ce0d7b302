package broker

import (
	"context"

	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/net/rabbitmq"
)

var _ event.Broker = (*Broker)(nil)

// Broker adapts domain events to the RabbitMQ client.
type Broker struct {
	mq     *rabbitmq.RabbitMQ
	logger logging.Logger
}

func NewBroker(mq *rabbitmq.RabbitMQ, logger logging.Logger) *Broker {
	return &Broker{
		mq:     mq,
		logger: logger,
	}
}

func (b *Broker) Publish(ctx context.Context, e event.Event) error {
	return b.mq.Publish(ctx, MessageFromEvent(e))
}

func (b *Broker) ResilientPublish(e event.Event) error {
	return b.mq.ResilientPublish(MessageFromEvent(e))
}

func (b *Broker) Subscribe(ctx context.Context, eType event.EventType, handler event.HandlerFunc) error {
	return b.mq.Subscribe(ctx, RouteFromType(eType), func(ctx context.Context, msg rabbitmq.Message) error {
		return handler(ctx, EventFromMessage(msg))
	})
}

func (b *Broker) Close() error {
	return b.mq.Close()
}
