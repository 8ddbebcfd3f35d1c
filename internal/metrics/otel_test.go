package metrics

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledInitializesRecorderAndHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: true,
		// No OTLP endpoint; uses Prometheus exporter only.
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec == nil || handler == nil || shutdown == nil {
		t.Fatalf("expected recorder, handler and shutdown")
	}
	defer shutdown(context.Background())

	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordRefreshCycle(time.Millisecond, nil)
	rec.RecordProviderAttempt("mlbstats", time.Millisecond, nil)
	rec.RecordRateLimit("mlbstats", time.Second)
	rec.RecordTeamScan(OutcomeOK, time.Millisecond)
	rec.RecordStreaks("WIN", 2)
	rec.RecordRun(2024, time.Second, errors.New("partial"))
}

func TestSetupPropagatesPrometheusError(t *testing.T) {
	orig := promReaderFactory
	defer func() { promReaderFactory = orig }()
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("registry failure")
	}

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatal("expected prometheus setup error")
	}
}

func TestInstrumentsExportStreakCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	inst, err := newOtelInstruments(provider)
	if err != nil {
		t.Fatalf("expected instruments, got %v", err)
	}
	rec := newRecorder(inst)
	rec.RecordStreaks("LOSS", 4)
	rec.RecordTeamScan(OutcomeFailed, time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	found := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			found[m.Name] = true
			if m.Name == "streaks_emitted_total" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 4 {
					t.Fatalf("unexpected streak counter data %+v", m.Data)
				}
			}
		}
	}
	if !found["streaks_emitted_total"] || !found["team_scans_total"] {
		t.Fatalf("expected streak and team metrics, got %v", found)
	}
}
