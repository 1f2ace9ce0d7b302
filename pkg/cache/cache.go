package cache

import (
	"context"
	"time"

	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/tracing"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
)

// Nil is returned by Get when the key does not exist.
// A miss is not cached: lookups of absent entries always fall through to the
// authoritative store.
const Nil = redis.Nil

const scanBatchSize = 100

// Cache is a Redis-backed key-value store with per-key TTL, sitting in front
// of the authoritative store's read paths. The underlying client is safe for
// concurrent use by all request handlers.
type Cache struct {
	client *redis.Client
	logger logging.Logger
	tracer trace.Tracer
}

type tracerProvider struct {
	embedded.TracerProvider
	tracer trace.Tracer
}

func (t tracerProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return t.tracer
}

func MakeCache(host, port, pass string, logger logging.Logger, tracer trace.Tracer) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: pass,
		DB:       0, // use default DB
	})

	if err := redisotel.InstrumentTracing(client, redisotel.WithTracerProvider(tracerProvider{tracer: tracer})); err != nil {
		return Cache{}, err
	}

	return Cache{
		client: client,
		logger: logger,
		tracer: tracer,
	}, nil
}

func (c Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c Cache) Close() error {
	return c.client.Close()
}

// Get returns the value stored under key or Nil when the key is absent.
func (c Cache) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := c.tracer.Start(ctx, "cache.Get")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	return c.client.Get(ctx, key).Bytes()
}

func (c Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	ctx, span := c.tracer.Start(ctx, "cache.Set")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c Cache) Delete(ctx context.Context, keys ...string) (err error) {
	ctx, span := c.tracer.Start(ctx, "cache.Delete")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	return c.client.Del(ctx, keys...).Err()
}

// DeleteMatching drops every currently resident key matching pattern.
// It iterates with SCAN so the server is never blocked the way KEYS would.
func (c Cache) DeleteMatching(ctx context.Context, pattern string) (err error) {
	ctx, span := c.tracer.Start(ctx, "cache.DeleteMatching")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	keys := make([]string, 0, scanBatchSize)

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatchSize {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
