package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"meeting-analysis-service/internal/api"
	"meeting-analysis-service/internal/app"
	"meeting-analysis-service/internal/archive"
	"meeting-analysis-service/internal/config"
	"meeting-analysis-service/internal/events"
	"meeting-analysis-service/internal/inference"
	"meeting-analysis-service/internal/inference/httpapi"
	"meeting-analysis-service/internal/inference/mock"
	"meeting-analysis-service/internal/jobs"
	"meeting-analysis-service/internal/observability"
	"meeting-analysis-service/internal/observability/metrics"
	"meeting-analysis-service/internal/service/analysis"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("application start failed")
	}

	// Publisher for job lifecycle events; log-only when Kafka is disabled.
	publisher := events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicCompleted: cfg.Kafka.TopicCompleted,
		TopicFailed:    cfg.Kafka.TopicFailed,
		Principal:      cfg.Kafka.Principal,
	})
	defer publisher.Close()

	transcriber, diarizer, summarizer, classifier := buildCollaborators(cfg)

	var archiver jobs.Archiver
	if cfg.Archive.Enabled {
		archiver = archive.New(cfg.Archive.Dir)
	}

	analyzer := analysis.NewAnalyzer(summarizer, classifier, metrics.DefaultMetrics)
	orchestrator := jobs.NewOrchestrator(
		jobs.NewMemoryStore(),
		transcriber,
		diarizer,
		analyzer,
		archiver,
		publisher,
		metrics.DefaultMetrics,
	)

	obsServer := observability.NewServer(":" + cfg.Observability.MetricsPort)
	obsServer.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Service.Port,
		Handler: api.NewRouter(orchestrator, metrics.DefaultMetrics),
	}

	go func() {
		log.Info().Str("port", cfg.Service.Port).Msg("Meeting analysis API started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down HTTP servers")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("API server shutdown error")
	}
	if err := obsServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("observability server shutdown error")
	}
	application.Shutdown()
}

// buildCollaborators selects the inference provider. The mock provider runs
// the whole pipeline without any model services.
func buildCollaborators(cfg *config.Configuration) (inference.Transcriber, inference.Diarizer, inference.Summarizer, inference.SentimentClassifier) {
	switch cfg.Inference.Provider {
	case "http":
		client := httpapi.New(httpapi.Config{
			TranscribeURL: cfg.Inference.TranscribeURL,
			DiarizeURL:    cfg.Inference.DiarizeURL,
			SummarizeURL:  cfg.Inference.SummarizeURL,
			SentimentURL:  cfg.Inference.SentimentURL,
			Timeout:       cfg.Inference.Timeout,
		})
		return client, client, client, client
	default:
		if cfg.Inference.Provider != "mock" {
			log.Warn().Str("provider", cfg.Inference.Provider).Msg("unknown inference provider, falling back to mock")
		}
		m := mock.New()
		return m, m, m, m
	}
}
