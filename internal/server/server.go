package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
	httpserver "github.com/preston-bernstein/mlb-streaks-service/internal/http"
	"github.com/preston-bernstein/mlb-streaks-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/refresher"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server runs the refresh loop and the read API.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	metricsStop   func(context.Context) error
	cleanup       func()
}

// New wires the pipeline, refresher, and HTTP servers for serve mode.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	cfg = boundCacheTTL(cfg, logger)
	recorder, metricsSrv, metricsShutdown := buildMetrics(ctx, cfg, logger)

	memory := store.NewMemoryStore()
	pipeline, err := NewPipeline(ctx, cfg, logger, recorder, memory)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}

	ref := refresher.New(pipeline.Service, logger, recorder, cfg.RefreshInterval)
	handler := handlers.NewHandler(memory, report.NewFSStore(cfg.Output.Dir), logger, ref.Status)
	router := httpserver.NewRouter(handler, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		httpServer:    newHTTPServer(cfg.Port, router),
		metricsServer: metricsSrv,
		refresher:     ref,
		metricsStop:   metricsShutdown,
		cleanup:       pipeline.Close,
	}, nil
}

// boundCacheTTL keeps cached roster and results younger than one refresh interval so every
// refresh reaches the provider.
func boundCacheTTL(cfg config.Config, logger *slog.Logger) config.Config {
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = refresher.DefaultInterval
	}
	if cfg.Storage.CacheTTL > 0 && cfg.Storage.CacheTTL < interval {
		return cfg
	}
	ttl := interval / 2
	if cfg.Storage.CacheTTL > 0 {
		logging.Warn(logger, "cache ttl not below refresh interval, lowering it",
			"cache_ttl", cfg.Storage.CacheTTL.String(),
			"refresh_interval", interval.String(),
			"effective_ttl", ttl.String(),
		)
	}
	cfg.Storage.CacheTTL = ttl
	return cfg
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, ref Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		refresher:  ref,
	}
}

// Run starts the refresher and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.cleanup != nil {
		s.cleanup()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := cfg.Metrics.Telemetry(true)

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newHTTPServer(recCfg.Port, handler)
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
