package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rookmere/bird-trend-etl/internal/adapter/ebird"
	"github.com/rookmere/bird-trend-etl/internal/adapter/httpapi"
	kafkaadapter "github.com/rookmere/bird-trend-etl/internal/adapter/kafka"
	"github.com/rookmere/bird-trend-etl/internal/config"
	"github.com/rookmere/bird-trend-etl/internal/domain"
	"github.com/rookmere/bird-trend-etl/internal/extract"
	"github.com/rookmere/bird-trend-etl/internal/observability"
	"github.com/rookmere/bird-trend-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var fetcher domain.PageFetcher = ebird.NewClient(cfg.SourceBaseURL, cfg.FetchTimeout, logger)
	fetcher = ebird.NewCachedFetcher(fetcher, cfg.PageCacheSize)

	extractor := extract.New(extract.DefaultSchema(), logger)

	// Trend sink is feature-flagged via TREND_SINK_ENABLED.
	var sink pipeline.TrendSink
	var writer *kafkaadapter.Writer
	if cfg.SinkEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		metrics.SinkEnabled.Set(1)
		logger.Info("trend sink enabled", "topic", cfg.KafkaTrendTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("trend sink disabled")
	}

	p := pipeline.New(fetcher, extractor, sink, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
