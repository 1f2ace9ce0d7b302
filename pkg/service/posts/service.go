package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pulsefeed/post-events/pkg/cache"
	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/storage"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "posts"

// Service owns the authoritative post store and its read-through cache.
// Every state-changing operation publishes a domain event and invalidates
// the affected cache keys before returning.
type Service struct {
	httpPort    int
	srv         *http.Server
	storage     storage.Storage
	cache       cache.Cache
	invalidator cache.Invalidator
	publisher   event.Publisher
	logger      logging.Logger
	tracer      trace.Tracer
}

type Dependencies struct {
	Storage   storage.Storage
	Cache     cache.Cache
	Publisher event.Publisher
	Logger    logging.Logger
	Tracer    trace.Tracer
}

func NewService(httpPort int, d Dependencies) *Service {
	s := &Service{
		httpPort:    httpPort,
		storage:     d.Storage,
		cache:       d.Cache,
		invalidator: cache.NewInvalidator(d.Cache),
		publisher:   d.Publisher,
		logger:      d.Logger,
		tracer:      d.Tracer,
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName))
	s.registerRoutes(router)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", httpPort),
		Handler: router,
	}

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Service) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Service) Run() error {
	s.logger.Log(context.Background(), "listening", "transport", "http", "port", s.httpPort)
	return s.srv.ListenAndServe()
}

func (s *Service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	var errMsg string
	if err := s.srv.Shutdown(ctx); err != nil {
		errMsg = fmt.Sprintf("failed to shutdown http server: %s", err)
	}
	if err := s.storage.Close(); err != nil {
		errMsg = fmt.Sprintf("%s, failed to close storage: %s", errMsg, err)
	}
	if err := s.cache.Close(); err != nil {
		errMsg = fmt.Sprintf("%s, failed to close cache: %s", errMsg, err)
	}
	if closer, ok := s.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errMsg = fmt.Sprintf("%s, failed to close publisher: %s", errMsg, err)
		}
	}

	if errMsg != "" {
		return errors.New(errMsg)
	}
	return nil
}

// CreatePost commits the post to the authoritative store, then publishes
// post.created and drops the affected cache keys. Event delivery and cache
// invalidation are best effort: the write is already committed and is never
// rolled back on their account.
func (s *Service) CreatePost(ctx context.Context, userId, content string, mediaIds []string) (entity.Post, error) {
	ctx, span := s.tracer.Start(ctx, "posts.CreatePost")
	defer span.End()

	post := entity.Post{
		Id:        uuid.NewString(),
		UserId:    userId,
		Content:   content,
		MediaIds:  mediaIds,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.Create(ctx, post); err != nil {
		return entity.Post{}, err
	}

	s.publishEvent(ctx, event.PostCreated, event.PostCreatedBody{
		PostId:    post.Id,
		UserId:    post.UserId,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
	s.invalidate(ctx, post.Id)

	return post, nil
}

// DeletePost removes the post owned by userId, then publishes post.deleted
// carrying the post's media references and drops the affected cache keys.
func (s *Service) DeletePost(ctx context.Context, id, userId string) error {
	ctx, span := s.tracer.Start(ctx, "posts.DeletePost")
	defer span.End()

	post, err := s.storage.Delete(ctx, id, userId)
	if err != nil {
		return err
	}

	s.publishEvent(ctx, event.PostDeleted, event.PostDeletedBody{
		PostId:   post.Id,
		UserId:   userId,
		MediaIds: post.MediaIds,
	})
	s.invalidate(ctx, post.Id)

	return nil
}

// GetPost reads through the cache. A miss is served from the authoritative
// store and cached; a missing post is not cached as an absence.
func (s *Service) GetPost(ctx context.Context, id string) (entity.Post, error) {
	ctx, span := s.tracer.Start(ctx, "posts.GetPost")
	defer span.End()

	key := cache.PostKey(id)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var post entity.Post
		if err := json.Unmarshal(data, &post); err == nil {
			return post, nil
		}
	}

	post, err := s.storage.Get(ctx, id)
	if err != nil {
		return entity.Post{}, err
	}

	s.cacheSet(ctx, key, post, cache.PostTTL)
	return post, nil
}

// ListResult is the listing envelope returned to clients and stored in the
// cache as one unit per page.
type ListResult struct {
	Posts       []entity.Post `json:"posts"`
	CurrentPage int           `json:"currentPage"`
	TotalPosts  int64         `json:"totalPosts"`
	TotalPages  int           `json:"totalPages"`
}

// ListPosts reads one page of the listing through the cache. Out-of-range
// paging values fall back to the defaults.
func (s *Service) ListPosts(ctx context.Context, page, limit int) (ListResult, error) {
	ctx, span := s.tracer.Start(ctx, "posts.ListPosts")
	defer span.End()

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	key := cache.ListingKey(page, limit)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var result ListResult
		if err := json.Unmarshal(data, &result); err == nil {
			return result, nil
		}
	}

	posts, err := s.storage.GetMultiple(ctx, page, limit)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.storage.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	result := ListResult{
		Posts:       posts,
		CurrentPage: page,
		TotalPosts:  total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}

	s.cacheSet(ctx, key, result, cache.ListingTTL)
	return result, nil
}

func (s *Service) publishEvent(ctx context.Context, eType event.EventType, body interface{}) {
	e, err := event.MakeEvent(eType, body)
	if err != nil {
		s.logger.Log(ctx, "Failed to serialize event", "err", err, "type", eType)
		return
	}

	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Log(ctx, "Failed to publish event", "err", err, "type", eType)
	}
}

func (s *Service) invalidate(ctx context.Context, postId string) {
	if err := s.invalidator.Invalidate(ctx, postId); err != nil {
		s.logger.Log(ctx, "Failed to invalidate cache", "err", err, "postId", postId)
	}
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Log(ctx, "Failed to serialize cache entry", "err", err, "key", key)
		return
	}

	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.Log(ctx, "Failed to set cache entry", "err", err, "key", key)
	}
}
