package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "x")
	Info(nil, "x")
	Warn(nil, "x")
	Error(nil, "x", errors.New("boom"))
}

func TestErrorAttachesErr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Error(logger, "fetch failed", errors.New("boom"), FieldTeam, "Cubs")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "team=Cubs") {
		t.Fatalf("expected error and team fields, got %q", out)
	}
}
