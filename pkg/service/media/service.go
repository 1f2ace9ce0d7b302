package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/storage/objectstorage"
	"github.com/pulsefeed/post-events/pkg/tracing"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "media"

// MediaStorage is the service's view of the media record store.
type MediaStorage interface {
	GetMultiple(ctx context.Context, ids []string) ([]entity.Media, error)
	Delete(ctx context.Context, id string) error
	io.Closer
}

// Service reclaims media owned by deleted posts. It consumes post.deleted
// events and removes both the stored object and the local record for every
// media id the event carries.
type Service struct {
	storage    MediaStorage
	objects    objectstorage.Deleter
	broker     event.Broker
	dispatcher *event.Dispatcher
	logger     logging.Logger
	tracer     trace.Tracer
}

type Dependencies struct {
	Storage MediaStorage
	Objects objectstorage.Deleter
	Broker  event.Broker
	Logger  logging.Logger
	Tracer  trace.Tracer
}

func NewService(d Dependencies) *Service {
	s := &Service{
		storage: d.Storage,
		objects: d.Objects,
		broker:  d.Broker,
		logger:  d.Logger,
		tracer:  d.Tracer,
	}

	dispatcher := event.NewDispatcher()
	dispatcher.Register(s.EventHandlers())
	s.dispatcher = dispatcher

	return s
}

func (s *Service) EventHandlers() map[event.EventType][]event.Handler {
	return map[event.EventType][]event.Handler{
		event.PostDeleted: {event.HandlerFunc(s.reclaimMedia)},
	}
}

// Run subscribes to the event stream and blocks until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	for eType := range s.EventHandlers() {
		if err := s.broker.Subscribe(ctx, eType, s.dispatcher.Dispatch); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eType, err)
		}
	}

	<-ctx.Done()
	return ctx.Err()
}

func (s *Service) Close() error {
	var errMsg string
	if err := s.broker.Close(); err != nil {
		errMsg = fmt.Sprintf("failed to close broker: %s", err)
	}
	if err := s.storage.Close(); err != nil {
		errMsg = fmt.Sprintf("%s, failed to close storage: %s", errMsg, err)
	}

	if errMsg != "" {
		return errors.New(errMsg)
	}
	return nil
}

// reclaimMedia deletes the objects and records behind every media id carried
// by a post.deleted event. Ids with no record are skipped, which makes
// redelivery of the same event harmless.
func (s *Service) reclaimMedia(ctx context.Context, e event.Event) (err error) {
	ctx, span := s.tracer.Start(ctx, "media.reclaimMedia")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	var body event.PostDeletedBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", e.Type, err)
	}
	if err := body.Validate(); err != nil {
		return err
	}

	if len(body.MediaIds) == 0 {
		return nil
	}

	records, err := s.storage.GetMultiple(ctx, body.MediaIds)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := s.objects.Delete(ctx, record.PublicId); err != nil {
			return fmt.Errorf("failed to delete object %s: %w", record.PublicId, err)
		}
		if err := s.storage.Delete(ctx, record.Id); err != nil {
			return fmt.Errorf("failed to delete media record %s: %w", record.Id, err)
		}
	}

	s.logger.Log(ctx, "Reclaimed media for deleted post",
		"postId", body.PostId, "deleted", len(records), "referenced", len(body.MediaIds))
	return nil
}
