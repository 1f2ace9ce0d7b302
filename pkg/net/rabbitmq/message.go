package rabbitmq

import (
	"time"
)

// ContentType describes the encoding of a message body. Post events always
// travel as JSON.
type ContentType string

const (
	ContentTypeJson ContentType = "application/json"
	ContentTypeText ContentType = "text/plain"
)

// Message is a single delivery on the bus: the raw payload plus the route it
// was (or will be) published with.
type Message struct {
	Route

	Body        []byte
	ContentType ContentType
	Timestamp   time.Time
}

// Route addresses a message on the post_events topology. RoutingKey selects
// the consumers: event types such as post.created double as routing keys, and
// every subscription binds its queue to exactly one of them.
type Route struct {
	ExchangeName string
	ExchangeType string
	RoutingKey   string
}
