package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/pulsefeed/post-events/pkg/config"
	"github.com/pulsefeed/post-events/pkg/env"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/service/media"
	"github.com/pulsefeed/post-events/pkg/tracing"
)

func main() {
	if err := env.Load(); err != nil {
		panic(err)
	}

	cfg, err := config.Load(media.ServiceName)
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdownTracing, err := tracing.InitProvider(ctx, media.ServiceName, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			logger.Log(ctx, "Failed to initialize tracing", "err", err)
		} else {
			defer shutdownTracing()
		}
	}

	service := media.NewService(getServiceDependencies(ctx, cfg, logger))
	defer func() {
		if err := service.Close(); err != nil {
			logger.Log(context.Background(), "Failed to shutdown service", "err", err)
			return
		}
		logger.Log(context.Background(), "Service exited properly")
	}()

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log(ctx, "Service stopped", "err", err)
	}

	logger.Log(context.Background(), "Service shutting down")
}
