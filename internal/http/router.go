package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/mlb-streaks-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
)

// NewRouter registers the read API and wraps it with request logging and metrics.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/streaks", h.Latest).Methods(nethttp.MethodGet)
	r.HandleFunc("/streaks/{season:[0-9]{4}}", h.BySeason).Methods(nethttp.MethodGet)
	r.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)
	return middleware.LoggingMiddleware(logger, recorder, r)
}
