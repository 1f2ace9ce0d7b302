package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publish declares the message's exchange and sends the message to it.
// It is fire-and-forget: no delivery confirmation is awaited.
func (mq *RabbitMQ) Publish(ctx context.Context, msg Message) error {
	ctx, span := mq.tracer.Start(ctx, "rabbitmq.Publish")
	defer span.End()

	if err := mq.prepareExchange(ctx, msg.Route); err != nil {
		return err
	}

	return mq.publish(ctx, msg)
}

// ResilientPublish enqueues the message for background delivery and returns
// a non-nil error only if the queue is full. Delivery is retried until it
// succeeds.
func (mq *RabbitMQ) ResilientPublish(msg Message) error {
	select {
	case mq.publishQueue <- msg:
		return nil
	default:
		return fmt.Errorf("publish queue is full")
	}
}

// prepareExchange declares the exchange derived from the route.
// The declaration is idempotent, redeclaring an existing exchange is safe.
// The exchange is not durable: binding state and unrouted messages do not
// survive a broker restart.
func (mq *RabbitMQ) prepareExchange(ctx context.Context, route Route) error {
	ch, err := mq.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = mq.breaker.Execute(func() (interface{}, error) {
		return nil, ch.ExchangeDeclare(
			route.ExchangeName, // name
			route.ExchangeType, // type
			false,              // durable
			false,              // auto-deleted
			false,              // internal
			false,              // no-wait
			nil,                // arguments
		)
	})
	return err
}

func (mq *RabbitMQ) publish(ctx context.Context, msg Message) error {
	ch, err := mq.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = mq.breaker.Execute(func() (interface{}, error) {
		return nil, ch.PublishWithContext(ctx,
			msg.ExchangeName, // exchange
			msg.RoutingKey,   // routing key
			false,            // mandatory
			false,            // immediate
			amqp.Publishing{
				ContentType: string(msg.ContentType),
				Timestamp:   msg.Timestamp,
				Body:        msg.Body,
			},
		)
	})
	return err
}
