// Command advisord serves event advisability assessments over HTTP and,
// when Kafka is configured, publishes every assessment to a sink topic.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/event-advisor/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/event-advisor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/event-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/config"
	"github.com/couchcryptid/event-advisor/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	dataset, err := csvfile.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded", "path", cfg.DatasetPath, "records", dataset.Len())

	var (
		publisher assess.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc := assess.New(dataset, cfg.BonusMode, publisher, logger, metrics)
	assessor := assess.NewCachedAssessor(svc, cfg.CacheSize, metrics)
	limiter := httpadapter.NewLimiter(cfg.RateLimit, cfg.RateBurst)

	srv := httpadapter.NewServer(cfg.HTTPAddr, assessor, svc, limiter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
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
