package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/propa-engine/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/propa-engine/internal/adapter/kafka"
	"github.com/couchcryptid/propa-engine/internal/adapter/mapbox"
	"github.com/couchcryptid/propa-engine/internal/budget"
	"github.com/couchcryptid/propa-engine/internal/climate"
	"github.com/couchcryptid/propa-engine/internal/config"
	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/couchcryptid/propa-engine/internal/observability"
	"github.com/couchcryptid/propa-engine/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source, err := climate.New(climate.Options{
		DataDir:   cfg.ClimateDataDir,
		RainZone:  cfg.ClimateRainZone,
		CacheSize: cfg.ClimateCacheSize,
	}, metrics, logger)
	if err != nil {
		logger.Error("failed to initialize climate source", "error", err)
		os.Exit(1)
	}

	evaluator := budget.NewEvaluator(source, logger,
		budget.WithMetrics(metrics),
		budget.WithWarningLogs(cfg.WarningsEnabled),
	)

	// Station geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(evaluator, geocoder, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, transformer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
