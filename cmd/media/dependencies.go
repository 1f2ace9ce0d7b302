package main

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/pulsefeed/post-events/pkg/config"
	"github.com/pulsefeed/post-events/pkg/event/broker"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/net/rabbitmq"
	"github.com/pulsefeed/post-events/pkg/service/media"
	"github.com/pulsefeed/post-events/pkg/storage/mediadb"
	"github.com/pulsefeed/post-events/pkg/storage/objectstorage"
	"go.opentelemetry.io/otel"
)

const maxConnectRetries = 10

func getServiceDependencies(ctx context.Context, cfg config.Config, logger logging.Logger) media.Dependencies {
	tracer := otel.Tracer(media.ServiceName)

	db, err := mediadb.MakeDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger, tracer)
	if err != nil {
		panic(err)
	}

	objects, err := objectstorage.NewS3(ctx, objectstorage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	}, logger)
	if err != nil {
		panic(err)
	}

	mq := rabbitmq.NewRabbitMQ(cfg.AMQP.URL, rabbitmq.DefaultConfig(), logger, tracer)
	err = backoff.Retry(mq.Run, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectRetries), ctx))
	if err != nil {
		panic(err)
	}

	return media.Dependencies{
		Storage: db,
		Objects: objects,
		Broker:  broker.NewBroker(mq, logger),
		Logger:  logger,
		Tracer:  tracer,
	}
}
