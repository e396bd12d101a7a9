// Package observability provides HTTP middleware and the metrics server.
package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"meeting-analysis-service/internal/observability/metrics"
)

// RequestLogger returns middleware that logs every API request and records
// request metrics. Route patterns (not raw paths) are used as metric labels to
// keep cardinality bounded.
func RequestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			m.RecordHTTPRequest(r.Method, route, ww.Status(), duration.Seconds())

			log.Info().
				Str("method", r.Method).
				Str("route", route).
				Int("status", ww.Status()).
				Dur("duration", duration).
				Msg("HTTP request")
		})
	}
}
