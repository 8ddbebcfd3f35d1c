package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
)

func TestConsoleProgress(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Progress(teams.Team{ID: "1", Name: "Team A"}, sampleStreaks()[:1], nil)
	c.Progress(teams.Team{ID: "2", Name: "Team B"}, nil, errors.New("timeout"))

	out := buf.String()
	if !strings.Contains(out, "Team A: 1 streaks\n") {
		t.Fatalf("expected team summary line, got %q", out)
	}
	if !strings.Contains(out, "  WIN 7 (2023-04-01 to 2023-04-07)") {
		t.Fatalf("expected streak line, got %q", out)
	}
	if !strings.Contains(out, "Team B: failed: timeout") {
		t.Fatalf("expected failure line, got %q", out)
	}
}

func TestConsoleWriteTable(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	rep := sampleReport(2023)
	rep.Failures = []Failure{{TeamID: "3", Team: "Team C", Error: "boom"}}
	rep.Partial = true

	if err := c.Write(context.Background(), rep); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.Contains(lines[0], "Season 2023 streaks of 5+ games") {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1") || !strings.Contains(lines[2], "Team A") || !strings.Contains(lines[2], "WIN") {
		t.Fatalf("expected longest streak first, got %q", lines[2])
	}
	if !strings.Contains(out, "Team C (3): boom") || !strings.Contains(out, "partial") {
		t.Fatalf("expected failures and partial note, got %q", out)
	}
	if c.Name() != "console" {
		t.Fatalf("unexpected name %s", c.Name())
	}
}

func TestNewConsoleDefaultsToStdout(t *testing.T) {
	if c := NewConsole(nil); c.out == nil {
		t.Fatal("expected stdout fallback")
	}
}
