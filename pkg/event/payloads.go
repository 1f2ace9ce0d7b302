package event

import (
	"errors"
	"time"
)

// ErrMissingPostId marks a payload that cannot be applied to any record.
// Handlers fail on it so the delivery gets dead-lettered instead of acked.
var ErrMissingPostId = errors.New("event payload is missing postId")

// PostCreatedBody is the payload published with PostCreated.
// Consumers ignore unknown fields.
type PostCreatedBody struct {
	PostId    string    `json:"postId"`
	UserId    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b PostCreatedBody) Validate() error {
	if b.PostId == "" {
		return ErrMissingPostId
	}
	return nil
}

// PostDeletedBody is the payload published with PostDeleted.
type PostDeletedBody struct {
	PostId   string   `json:"postId"`
	UserId   string   `json:"userId"`
	MediaIds []string `json:"mediaIds"`
}

func (b PostDeletedBody) Validate() error {
	if b.PostId == "" {
		return ErrMissingPostId
	}
	return nil
}
