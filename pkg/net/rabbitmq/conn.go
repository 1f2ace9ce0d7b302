package rabbitmq

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
)

const (
	connectionError = iota
	channelError
)

func makeBreakerSettings(config Config) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "rabbitmq",
		MaxRequests: config.MaxRequests,
		Interval:    config.ClearInterval,
		Timeout:     config.ClosedTimeout,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	}
}

func errorType(code int) int {
	switch code {
	case
		amqp.ContentTooLarge,    // 311
		amqp.NoConsumers,        // 313
		amqp.AccessRefused,      // 403
		amqp.NotFound,           // 404
		amqp.ResourceLocked,     // 405
		amqp.PreconditionFailed: // 406
		return channelError

	default:
		return connectionError
	}
}

// isConnectionError reports whether err rendered the whole connection
// unusable, as opposed to a single channel.
func isConnectionError(err error) bool {
	var amqpErr *amqp.Error
	if !errors.As(err, &amqpErr) {
		return false
	}
	return errorType(amqpErr.Code) == connectionError
}
