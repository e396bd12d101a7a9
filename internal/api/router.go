// Package api exposes the job submission and retrieval HTTP surface.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"meeting-analysis-service/internal/jobs"
	"meeting-analysis-service/internal/observability"
	"meeting-analysis-service/internal/observability/metrics"
)

// NewRouter constructs the HTTP router for the service.
func NewRouter(orc *jobs.Orchestrator, m *metrics.Metrics) http.Handler {
	if m == nil {
		m = metrics.DefaultMetrics
	}
	h := &handler{orchestrator: orc}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observability.RequestLogger(m))

	// Health endpoints
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Job API
	r.Route("/api", func(r chi.Router) {
		r.Post("/process", h.process)
		r.Get("/status/{jobID}", h.status)
		r.Get("/result/{jobID}", h.result)
	})

	return r
}
