package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pulsefeed/post-events/pkg/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ExchangeName is the topic exchange shared by the post services.
	ExchangeName = "post_events"
	// DeadLetterExchangeName receives deliveries that exhausted redelivery.
	DeadLetterExchangeName = "post_events.dlx"
	// DeadLetterQueueName parks dead-lettered deliveries for inspection.
	DeadLetterQueueName = "post_events.dead"
)

// ErrClosed is returned by operations issued after Close.
var ErrClosed = errors.New("rabbitmq client is closed")

// channelResult is the reply to a channel request. A failed reply means the
// connection is currently unusable; the caller treats it as a normal
// operation failure, never as fatal.
type channelResult struct {
	channel *amqp.Channel
	err     error
}

type RabbitMQ struct {
	config Config

	mu           sync.RWMutex            // Protects connection during reconnects.
	url          string                  // Connection string to the broker.
	errC         chan *amqp.Error        // Signals lost connections so they get renewed.
	publishQueue chan Message            // Messages waiting to be (re)published.
	readC        chan chan channelResult // Thread-safe access to fresh channels.
	done         chan struct{}
	closeOnce    sync.Once
	connection   *amqp.Connection
	breaker      *gobreaker.CircuitBreaker
	logger       logging.Logger
	tracer       trace.Tracer
}

func NewRabbitMQ(url string, config Config, logger logging.Logger, tracer trace.Tracer) *RabbitMQ {
	return &RabbitMQ{
		config:       config,
		url:          url,
		errC:         make(chan *amqp.Error, 1),
		publishQueue: make(chan Message, config.QueueSize),
		readC:        make(chan chan channelResult),
		done:         make(chan struct{}),
		breaker:      gobreaker.NewCircuitBreaker(makeBreakerSettings(config)),
		logger:       logger,
		tracer:       tracer,
	}
}

// Run dials the broker and starts the background loops maintaining the
// connection and draining the publish queue. It returns an error when the
// broker is unreachable; the caller is expected to retry at process start.
func (mq *RabbitMQ) Run() error {
	if err := mq.dial(); err != nil {
		return err
	}

	go mq.handleConnectionErrors()
	go mq.handleChannelRequests()
	go mq.runPublishQueue()

	return nil
}

// dial renews the current TCP connection.
func (mq *RabbitMQ) dial() error {
	conn, err := mq.breaker.Execute(func() (interface{}, error) {
		return amqp.Dial(mq.url)
	})
	if err != nil {
		return err
	}

	connection := conn.(*amqp.Connection)

	mq.mu.Lock()
	mq.connection = connection
	mq.mu.Unlock()

	go func() {
		for e := range connection.NotifyClose(make(chan *amqp.Error, 1)) {
			select {
			case mq.errC <- e:
			case <-mq.done:
				return
			}
		}
	}()

	return nil
}

// handleConnectionErrors is meant to be run in a separate goroutine.
func (mq *RabbitMQ) handleConnectionErrors() {
	for {
		select {
		case <-mq.done:
			return
		case e := <-mq.errC:
			if e == nil || !isConnectionError(e) {
				continue
			}

			for {
				err := mq.dial()
				if err == nil {
					break
				}
				mq.logger.Log(context.Background(), "Reconnecting to RabbitMQ", "err", err)
				time.Sleep(mq.config.ReconnectInterval)
			}
		}
	}
}

// handleChannelRequests is meant to be run in a separate goroutine.
func (mq *RabbitMQ) handleChannelRequests() {
	for {
		select {
		case <-mq.done:
			return
		case req := <-mq.readC:
			channel, err := mq.openChannel()
			if err != nil {
				mq.logger.Log(context.Background(), "Failed to open a channel", "err", err)
			}
			req <- channelResult{channel: channel, err: err}
		}
	}
}

// runPublishQueue is meant to be run in a separate goroutine.
func (mq *RabbitMQ) runPublishQueue() {
	for {
		select {
		case <-mq.done:
			return
		case msg := <-mq.publishQueue:
			for {
				_, err := mq.breaker.Execute(func() (interface{}, error) {
					ctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					return nil, mq.publish(ctx, msg)
				})
				if err == nil {
					break
				}
				mq.logger.Log(context.Background(), "Failed to publish a message", "err", err, "routingKey", msg.RoutingKey)
				time.Sleep(mq.config.ReconnectInterval)
			}
		}
	}
}

func (mq *RabbitMQ) openChannel() (*amqp.Channel, error) {
	mq.mu.RLock()
	defer mq.mu.RUnlock()

	if mq.connection == nil {
		return nil, ErrClosed
	}
	return mq.connection.Channel()
}

// channel hands out a fresh channel in a thread-safe way.
// The caller owns the channel and has to close it. An error means the
// connection is down or the client is closed.
func (mq *RabbitMQ) channel() (*amqp.Channel, error) {
	ask := make(chan channelResult)

	select {
	case mq.readC <- ask:
	case <-mq.done:
		return nil, ErrClosed
	}

	res := <-ask
	return res.channel, res.err
}

// Close shuts down the background loops and closes the active connection.
func (mq *RabbitMQ) Close() error {
	mq.closeOnce.Do(func() {
		close(mq.done)
	})

	mq.mu.RLock()
	defer mq.mu.RUnlock()

	if mq.connection != nil && !mq.connection.IsClosed() {
		mq.logger.Log(context.Background(), "Closing active connections")
		return mq.connection.Close()
	}
	return nil
}
