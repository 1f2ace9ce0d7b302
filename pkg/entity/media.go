package entity

// Media references an object held in external storage on behalf of a post.
type Media struct {
	Id       string `json:"id,omitempty" bson:"_id"`
	UserId   string `json:"userId,omitempty" bson:"userId"`
	PublicId string `json:"publicId,omitempty" bson:"publicId"` // Key of the object in external storage.
	Url      string `json:"url,omitempty" bson:"url"`
}
