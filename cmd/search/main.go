package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pulsefeed/post-events/pkg/config"
	"github.com/pulsefeed/post-events/pkg/env"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/service/search"
	"github.com/pulsefeed/post-events/pkg/tracing"
)

var port int

func init() {
	portFlag := flag.Int("p", 0, "The HTTP server port, overrides config")
	flag.Parse()
	port = *portFlag
}

func main() {
	if err := env.Load(); err != nil {
		panic(err)
	}

	cfg, err := config.Load(search.ServiceName)
	if err != nil {
		panic(err)
	}
	if port != 0 {
		cfg.HTTP.Port = port
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdownTracing, err := tracing.InitProvider(ctx, search.ServiceName, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			logger.Log(ctx, "Failed to initialize tracing", "err", err)
		} else {
			defer shutdownTracing()
		}
	}

	service := search.NewService(cfg.HTTP.Port, getServiceDependencies(ctx, cfg, logger))
	defer func() {
		if err := service.Close(); err != nil {
			logger.Log(context.Background(), "Failed to shutdown service", "err", err)
			return
		}
		logger.Log(context.Background(), "Service exited properly")
	}()

	go func() {
		if err := service.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(ctx, "Server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Log(context.Background(), "Service shutting down")
}
