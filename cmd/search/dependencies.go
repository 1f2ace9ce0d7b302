package main

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/pulsefeed/post-events/pkg/config"
	"github.com/pulsefeed/post-events/pkg/event/broker"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/net/rabbitmq"
	"github.com/pulsefeed/post-events/pkg/service/search"
	"github.com/pulsefeed/post-events/pkg/storage/searchindex"
	"go.opentelemetry.io/otel"
)

const maxConnectRetries = 10

func getServiceDependencies(ctx context.Context, cfg config.Config, logger logging.Logger) search.Dependencies {
	tracer := otel.Tracer(search.ServiceName)

	index, err := searchindex.MakeIndex(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger, tracer)
	if err != nil {
		panic(err)
	}

	mq := rabbitmq.NewRabbitMQ(cfg.AMQP.URL, rabbitmq.DefaultConfig(), logger, tracer)
	err = backoff.Retry(mq.Run, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectRetries), ctx))
	if err != nil {
		panic(err)
	}

	return search.Dependencies{
		Index:  index,
		Broker: broker.NewBroker(mq, logger),
		Logger: logger,
		Tracer: tracer,
	}
}
