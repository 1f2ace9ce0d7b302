package rabbitmq

import (
	"time"
)

type Config struct {
	QueueSize         int           // Max number of messages internally queued for publishing.
	ReconnectInterval time.Duration // Time between reconnect attempts.

	// Settings for the internal circuit breaker.
	MaxRequests   uint32        // Number of requests allowed in half-open state.
	ClearInterval time.Duration // Time after which failed calls count is cleared.
	ClosedTimeout time.Duration // Time after which open state becomes half-open.
}

func DefaultConfig() Config {
	return Config{
		QueueSize:         100,
		ReconnectInterval: time.Second * 2,
		MaxRequests:       10,
		ClearInterval:     time.Second * 10,
		ClosedTimeout:     time.Second * 10,
	}
}
