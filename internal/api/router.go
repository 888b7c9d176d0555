// internal/api/router.go
package api

import (
	"context"
	"net/http"
	"time"

	"sales-workers/internal/common/database"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/common/observability"
	processturn "sales-workers/internal/workers/sales/process-turn"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TurnService runs one turn synchronously.
type TurnService interface {
	Execute(ctx context.Context, input *processturn.Input) (*processturn.Output, error)
}

type Dependencies struct {
	Turns          TurnService
	Health         map[string]database.Pinger
	Observability  *observability.Observability
	Logger         logger.Logger
	RequestTimeout time.Duration
	Version        string
}

// NewRouter serves the turn API next to the health and metrics endpoints.
func NewRouter(deps Dependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 10 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	health := &healthHandler{deps: deps.Health, version: deps.Version}
	r.Get("/health", health.Live)
	r.Get("/ready", health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	turns := &turnHandler{
		service:  deps.Turns,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		obs:      deps.Observability,
		logger:   deps.Logger.WithFields(map[string]interface{}{"component": "http"}),
	}
	r.Route("/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(deps.RequestTimeout))
		r.Post("/turns", turns.Create)
	})

	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"durationMs": time.Since(start).Milliseconds(),
				"requestId":  chimiddleware.GetReqID(r.Context()),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Error("request failed", fields)
				return
			}
			log.Debug("request served", fields)
		})
	}
}
