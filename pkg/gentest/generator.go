package gentest

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pulsefeed/post-events/pkg/entity"
)

func RandomString(length int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	v := make([]rune, length)
	for i := range v {
		v[i] = letters[rand.Intn(len(letters))]
	}
	return string(v)
}

// RandomPost returns a post with the given number of media references.
// It should be used ONLY for testing.
func RandomPost(mediaCount int) entity.Post {
	mediaIds := make([]string, 0, mediaCount)
	for i := 0; i < mediaCount; i++ {
		mediaIds = append(mediaIds, uuid.NewString())
	}

	return entity.Post{
		Id:        uuid.NewString(),
		UserId:    uuid.NewString(),
		Content:   RandomString(20),
		MediaIds:  mediaIds,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}
