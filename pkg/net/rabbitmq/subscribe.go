package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler is invoked for every delivery received on a subscription.
// A non-nil error leaves the delivery unacked so the broker redelivers it.
type Handler func(ctx context.Context, msg Message) error

// Subscribe declares an exclusive auto-named queue bound to the route's
// routing key and consumes it until ctx is done. Deliveries are acked only
// after handler returns nil. A failed delivery is requeued once; failing
// again dead-letters it to the parking queue, so a poison message cannot
// stall the subscription.
func (mq *RabbitMQ) Subscribe(ctx context.Context, route Route, handler Handler) error {
	ch, err := mq.channel()
	if err != nil {
		return err
	}

	queue, err := mq.prepareQueue(ctx, ch, route)
	if err != nil {
		ch.Close()
		return err
	}

	deliveries, err := ch.Consume(
		queue.Name, // queue
		"",         // consumer
		false,      // auto ack
		true,       // exclusive
		false,      // no local
		false,      // no wait
		nil,        // args
	)
	if err != nil {
		ch.Close()
		return err
	}

	go mq.handleDeliveries(ctx, ch, route, deliveries, handler)

	return nil
}

// prepareQueue declares the consumer queue together with the exchanges it
// depends on. The queue is exclusive and auto-named: its lifetime equals the
// consumer's, and messages published while the consumer is away are lost.
func (mq *RabbitMQ) prepareQueue(ctx context.Context, ch *amqp.Channel, route Route) (amqp.Queue, error) {
	if err := ctx.Err(); err != nil {
		return amqp.Queue{}, err
	}

	queue, err := mq.breaker.Execute(func() (interface{}, error) {
		if err := ch.ExchangeDeclare(
			route.ExchangeName, // name
			route.ExchangeType, // type
			false,              // durable
			false,              // auto-deleted
			false,              // internal
			false,              // no-wait
			nil,                // arguments
		); err != nil {
			return amqp.Queue{}, err
		}

		// Dead-letter parking is durable so poison messages survive broker
		// restarts and stay inspectable.
		if err := ch.ExchangeDeclare(DeadLetterExchangeName, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
			return amqp.Queue{}, err
		}

		if _, err := ch.QueueDeclare(DeadLetterQueueName, true, false, false, false, nil); err != nil {
			return amqp.Queue{}, err
		}

		if err := ch.QueueBind(DeadLetterQueueName, "", DeadLetterExchangeName, false, nil); err != nil {
			return amqp.Queue{}, err
		}

		queue, err := ch.QueueDeclare(
			"",    // name, auto-generated
			false, // durable
			true,  // delete when unused
			true,  // exclusive
			false, // no-wait
			amqp.Table{"x-dead-letter-exchange": DeadLetterExchangeName},
		)
		if err != nil {
			return amqp.Queue{}, err
		}

		if err := ch.QueueBind(
			queue.Name,         // queue name
			route.RoutingKey,   // routing key
			route.ExchangeName, // exchange
			false,              // no-wait
			nil,                // arguments
		); err != nil {
			return amqp.Queue{}, err
		}

		return queue, nil
	})
	if err != nil {
		return amqp.Queue{}, err
	}

	return queue.(amqp.Queue), nil
}

func (mq *RabbitMQ) handleDeliveries(ctx context.Context, ch *amqp.Channel, route Route, deliveries <-chan amqp.Delivery, handler Handler) {
	defer ch.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-mq.done:
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}

			msg := Message{
				Body:        delivery.Body,
				ContentType: ContentType(delivery.ContentType),
				Timestamp:   delivery.Timestamp,
				Route: Route{
					ExchangeName: route.ExchangeName,
					ExchangeType: route.ExchangeType,
					RoutingKey:   delivery.RoutingKey,
				},
			}

			if err := handler(ctx, msg); err != nil {
				mq.logger.Log(ctx, "Failed to handle delivery",
					"err", err,
					"routingKey", delivery.RoutingKey,
					"redelivered", delivery.Redelivered,
				)
				// Requeue first-time failures, dead-letter the rest.
				if err := delivery.Nack(false, !delivery.Redelivered); err != nil {
					mq.logger.Log(ctx, "Failed to nack delivery", "err", err)
				}
				continue
			}

			if err := delivery.Ack(false); err != nil {
				mq.logger.Log(ctx, "Failed to ack delivery", "err", err)
			}
		}
	}
}
