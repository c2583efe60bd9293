package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lemap/hubwatch/internal/pkg/application/alerts"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/metrics"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/tracing"
	"github.com/lemap/hubwatch/internal/pkg/presentation/api/auth"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hubwatch/api")

type problem struct {
	Detail string `json:"detail"`
}

// RegisterHandlers mounts the read only routes on the router, both at the
// root and below /api/v0. When policies is non nil every data route
// requires a bearer token accepted by the policies.
func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, svc alerts.AlertService) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	log := logging.GetLoggerFromContext(ctx)

	var authenticator func(http.Handler) http.Handler

	if policies != nil {
		var err error
		authenticator, err = auth.NewAuthenticator(ctx, policies)
		if err != nil {
			return nil, fmt.Errorf("failed to create api authenticator: %w", err)
		}
	}

	routes := func(r chi.Router) {
		if authenticator != nil {
			r.Use(authenticator)
		}

		r.Get("/alerts", getAlertsHandler(log, svc))
		r.Get("/events", getEventsHandler(log, svc))
		r.Get("/hub-status", getHubStatusHandler(log, svc))
	}

	router.Group(routes)
	router.Route("/api/v0", routes)

	return router, nil
}

func getAlertsHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		hub := r.URL.Query().Get("hub")

		result, err := svc.Alerts(ctx, hub)
		if err != nil {
			writeError(w, requestLogger, "/alerts", err)
			return
		}

		writeJSON(w, requestLogger, "/alerts", result)
	}
}

func getEventsHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-events")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		hub := r.URL.Query().Get("hub")

		result, err := svc.Events(ctx, hub)
		if err != nil {
			writeError(w, requestLogger, "/events", err)
			return
		}

		writeJSON(w, requestLogger, "/events", result)
	}
}

func getHubStatusHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-hub-status")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		status, err := svc.HubStatus(ctx)
		if err != nil {
			writeError(w, requestLogger, "/hub-status", err)
			return
		}

		writeJSON(w, requestLogger, "/hub-status", status)
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, route string, err error) {
	code := http.StatusInternalServerError
	detail := http.StatusText(code)

	if errors.Is(err, alerts.ErrInvalidHub) {
		code = http.StatusBadRequest
		detail = err.Error()
		logger.Debug().Err(err).Msg("invalid hub requested")
	} else {
		logger.Error().Err(err).Msgf("unable to serve %s", route)
	}

	b, _ := json.Marshal(problem{Detail: detail})

	metrics.IncAPIRequest(route, code)

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, route string, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		writeError(w, logger, route, err)
		return
	}

	metrics.IncAPIRequest(route, http.StatusOK)

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
