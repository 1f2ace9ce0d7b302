package main

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/pulsefeed/post-events/pkg/cache"
	"github.com/pulsefeed/post-events/pkg/config"
	"github.com/pulsefeed/post-events/pkg/event/broker"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/net/rabbitmq"
	"github.com/pulsefeed/post-events/pkg/service/posts"
	"github.com/pulsefeed/post-events/pkg/storage/postdb"
	"go.opentelemetry.io/otel"
)

const maxConnectRetries = 10

func getServiceDependencies(ctx context.Context, cfg config.Config, logger logging.Logger) posts.Dependencies {
	tracer := otel.Tracer(posts.ServiceName)

	db, err := postdb.MakeDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger, tracer)
	if err != nil {
		panic(err)
	}

	c, err := cache.MakeCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, logger, tracer)
	if err != nil {
		panic(err)
	}

	mq := rabbitmq.NewRabbitMQ(cfg.AMQP.URL, rabbitmq.DefaultConfig(), logger, tracer)
	err = backoff.Retry(mq.Run, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectRetries), ctx))
	if err != nil {
		panic(err)
	}

	return posts.Dependencies{
		Storage:   db,
		Cache:     c,
		Publisher: broker.NewBroker(mq, logger),
		Logger:    logger,
		Tracer:    tracer,
	}
}
