package entity

import "time"

// Post is the authoritative record owned by the posts service.
type Post struct {
	Id        string    `json:"id,omitempty" bson:"_id"`
	UserId    string    `json:"userId,omitempty" bson:"userId"` // Author's ID, forwarded by the gateway.
	Content   string    `json:"content,omitempty" bson:"content"`
	MediaIds  []string  `json:"mediaIds,omitempty" bson:"mediaIds,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// SearchPost is the denormalized copy of a post kept in the search index.
// Its lifecycle is driven entirely by consumed events.
type SearchPost struct {
	PostId    string    `json:"postId" bson:"postId"`
	UserId    string    `json:"userId" bson:"userId"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
