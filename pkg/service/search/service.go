package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "search"

// Index is the service's view of the search store.
type Index interface {
	Upsert(ctx context.Context, doc entity.SearchPost) error
	Delete(ctx context.Context, postId, userId string) error
	Search(ctx context.Context, query string) ([]entity.SearchPost, error)
	io.Closer
}

// Service keeps a denormalized search index in sync with the post stream.
// It never talks to the posts service directly; everything it knows arrives
// as events, so the index converges once the stream is drained.
type Service struct {
	httpPort   int
	srv        *http.Server
	index      Index
	broker     event.Broker
	dispatcher *event.Dispatcher
	logger     logging.Logger
	tracer     trace.Tracer
}

type Dependencies struct {
	Index  Index
	Broker event.Broker
	Logger logging.Logger
	Tracer trace.Tracer
}

func NewService(httpPort int, d Dependencies) *Service {
	s := &Service{
		httpPort: httpPort,
		index:    d.Index,
		broker:   d.Broker,
		logger:   d.Logger,
		tracer:   d.Tracer,
	}

	dispatcher := event.NewDispatcher()
	dispatcher.Register(s.EventHandlers())
	s.dispatcher = dispatcher

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName))
	router.GET("/api/search", s.handleSearch)

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

// EventHandlers declares which event types this service consumes and how
// each one is applied to the index.
func (s *Service) EventHandlers() map[event.EventType][]event.Handler {
	return map[event.EventType][]event.Handler{
		event.PostCreated: {event.HandlerFunc(s.indexPost)},
		event.PostDeleted: {event.HandlerFunc(s.removePost)},
	}
}

// Run subscribes to the event stream and serves the query endpoint until ctx
// is canceled.
func (s *Service) Run(ctx context.Context) error {
	for eType := range s.EventHandlers() {
		if err := s.broker.Subscribe(ctx, eType, s.dispatcher.Dispatch); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eType, err)
		}
	}

	s.logger.Log(ctx, "listening", "transport", "http", "port", s.httpPort)
	return s.srv.ListenAndServe()
}

func (s *Service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	var errMsg string
	if err := s.srv.Shutdown(ctx); err != nil {
		errMsg = fmt.Sprintf("failed to shutdown http server: %s", err)
	}
	if err := s.broker.Close(); err != nil {
		errMsg = fmt.Sprintf("%s, failed to close broker: %s", errMsg, err)
	}
	if err := s.index.Close(); err != nil {
		errMsg = fmt.Sprintf("%s, failed to close index: %s", errMsg, err)
	}

	if errMsg != "" {
		return errors.New(errMsg)
	}
	return nil
}

func (s *Service) indexPost(ctx context.Context, e event.Event) (err error) {
	ctx, span := s.tracer.Start(ctx, "search.indexPost")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	var body event.PostCreatedBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", e.Type, err)
	}
	if err := body.Validate(); err != nil {
		return err
	}

	if err := s.index.Upsert(ctx, entity.SearchPost{
		PostId:    body.PostId,
		UserId:    body.UserId,
		Content:   body.Content,
		CreatedAt: body.CreatedAt,
	}); err != nil {
		return err
	}

	s.logger.Log(ctx, "Indexed post", "postId", body.PostId)
	return nil
}

func (s *Service) removePost(ctx context.Context, e event.Event) (err error) {
	ctx, span := s.tracer.Start(ctx, "search.removePost")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	var body event.PostDeletedBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", e.Type, err)
	}
	if err := body.Validate(); err != nil {
		return err
	}

	if err := s.index.Delete(ctx, body.PostId, body.UserId); err != nil {
		return err
	}

	s.logger.Log(ctx, "Removed post from index", "postId", body.PostId)
	return nil
}

func (s *Service) handleSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Query is required"})
		return
	}

	results, err := s.index.Search(c.Request.Context(), query)
	if err != nil {
		s.logger.Log(c.Request.Context(), "Failed to search posts", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to search posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
