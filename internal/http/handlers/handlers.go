package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/refresher"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/streaks"
)

// LatestReports serves reports held in memory by the refresh loop.
type LatestReports interface {
	Latest() (report.Report, bool)
	Report(season int) (report.Report, bool)
}

// ReportLoader reads persisted season reports.
type ReportLoader interface {
	LoadReport(season int) (report.Report, error)
}

// Handler wires HTTP routes to the season reports.
type Handler struct {
	latest   LatestReports
	reports  ReportLoader
	logger   *slog.Logger
	statusFn func() refresher.Status
}

// NewHandler constructs a Handler. Any dependency may be nil.
func NewHandler(latest LatestReports, reports ReportLoader, logger *slog.Logger, statusFn func() refresher.Status) *Handler {
	return &Handler{
		latest:   latest,
		reports:  reports,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the refresh loop has produced a report recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Latest returns the most recent report, filtered by ?min= and ?type=.
func (h *Handler) Latest(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if h.latest == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "no report yet", h.logger)
		return
	}
	rep, ok := h.latest.Latest()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, "no report yet", h.logger)
		return
	}
	h.serveReport(w, r, rep, f, "memory")
}

// BySeason returns one season's report, from memory when the refresher holds it, otherwise from disk.
func (h *Handler) BySeason(w nethttp.ResponseWriter, r *nethttp.Request) {
	season, err := strconv.Atoi(mux.Vars(r)["season"])
	if err != nil || season <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season", h.logger)
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	if h.latest != nil {
		if rep, ok := h.latest.Report(season); ok {
			h.serveReport(w, r, rep, f, "memory")
			return
		}
	}
	if h.reports == nil {
		writeError(w, r, nethttp.StatusNotFound, "report not found", h.logger)
		return
	}
	rep, err := h.reports.LoadReport(season)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			writeError(w, r, nethttp.StatusNotFound, "report not found", h.logger)
			return
		}
		logging.Error(loggerFromContext(r, h.logger), "report load failed", err, logging.FieldSeason, season)
		writeError(w, r, nethttp.StatusBadGateway, "report unavailable", h.logger)
		return
	}
	h.serveReport(w, r, rep, f, "disk")
}

// NotFound renders unknown routes as JSON.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed renders wrong-method requests as JSON.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) serveReport(w nethttp.ResponseWriter, r *nethttp.Request, rep report.Report, f filter, source string) {
	rep.Streaks = streaks.Filter(rep.Streaks, f.min, f.kind)
	logging.Info(loggerFromContext(r, h.logger), "served streaks",
		logging.FieldSeason, rep.Season,
		logging.FieldCount, len(rep.Streaks),
		"source", source,
	)
	writeJSON(w, nethttp.StatusOK, rep, h.logger)
}

type filter struct {
	min  int
	kind domainstreaks.Type
}

func parseFilter(r *nethttp.Request) (filter, error) {
	var f filter
	q := r.URL.Query()
	if raw := q.Get("min"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter{}, errors.New("invalid min (expected a positive integer)")
		}
		f.min = n
	}
	if raw := q.Get("type"); raw != "" {
		kind, ok := domainstreaks.ParseType(strings.ToUpper(raw))
		if !ok {
			return filter{}, errors.New("invalid type (expected WIN or LOSS)")
		}
		f.kind = kind
	}
	return f, nil
}
