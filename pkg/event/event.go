package event

import (
	"encoding/json"
	"time"
)

// Events are sent to the post_events exchange in JSON format.
// Body holds the raw payload object; the routing key carries the type.
type Event struct {
	Type      EventType `json:"type,omitempty"`
	Body      []byte    `json:"body,omitempty"` // Must be marshaled to JSON.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// EventType values double as routing keys on the topic exchange.
type EventType string

const (
	PostCreated EventType = "post.created"
	PostDeleted EventType = "post.deleted"
)

// MakeEvent marshals body and stamps the event with the current time.
func MakeEvent(eType EventType, body interface{}) (Event, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Type:      eType,
		Body:      data,
		Timestamp: time.Now(),
	}, nil
}
