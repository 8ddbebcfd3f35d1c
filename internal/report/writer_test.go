package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriterWritesReportAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 0)
	rep := sampleReport(2023)

	if err := w.Write(context.Background(), rep); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "reports", "2023.json"))
	if err != nil {
		t.Fatalf("expected report file, got %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected valid json, got %v", err)
	}
	if decoded.RunID != rep.RunID || len(decoded.Streaks) != 2 {
		t.Fatalf("unexpected decoded report %+v", decoded)
	}

	m, err := readManifest(ManifestPath(dir), 0)
	if err != nil {
		t.Fatalf("expected manifest, got %v", err)
	}
	if len(m.Reports.Seasons) != 1 || m.Reports.Seasons[0] != 2023 || m.Reports.LastRunID != rep.RunID {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if _, err := os.Stat(ReportPath(dir, 2023) + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away")
	}
}

func TestWriterPrunesOldSeasons(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 2)

	for _, season := range []int{2021, 2023, 2022} {
		writeReport(t, w, sampleReport(season))
	}

	if _, err := os.Stat(ReportPath(dir, 2021)); !os.IsNotExist(err) {
		t.Fatalf("expected oldest season to be pruned")
	}
	for _, season := range []int{2022, 2023} {
		if _, err := os.Stat(ReportPath(dir, season)); err != nil {
			t.Fatalf("expected season %d to be kept", season)
		}
	}
	m, _ := readManifest(ManifestPath(dir), 0)
	if len(m.Reports.Seasons) != 2 || m.Reports.Seasons[0] != 2022 || m.Retention.Seasons != 2 {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestWriterOverwritesSameSeason(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 0)
	writeReport(t, w, sampleReport(2023))
	second := sampleReport(2023)
	writeReport(t, w, second)

	got, err := NewFSStore(dir).LoadReport(2023)
	if err != nil {
		t.Fatalf("expected report, got %v", err)
	}
	if got.RunID != second.RunID {
		t.Fatalf("expected latest run to win")
	}
}

func TestWriterHandlesNilAndMissingSeason(t *testing.T) {
	var w *Writer
	if err := w.WriteReport(sampleReport(2023)); err == nil {
		t.Fatalf("expected error for nil writer")
	}

	w = NewWriter(t.TempDir(), 1)
	if err := w.WriteReport(Report{}); err == nil {
		t.Fatalf("expected error for missing season")
	}
}

func TestListSeasonsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	reports := filepath.Join(dir, "reports")
	if err := os.MkdirAll(filepath.Join(reports, "nested"), 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	for _, name := range []string{"2020.json", "notes.json", "2019.txt", "manifest.json"} {
		if err := os.WriteFile(filepath.Join(reports, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	seasons, err := NewWriter(dir, 0).listSeasons()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seasons) != 1 || seasons[0] != 2020 {
		t.Fatalf("expected only season files, got %v", seasons)
	}
}

func TestWriterNameAndBasePath(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, -1)
	if w.BasePath() != base || w.Name() != "json" || w.retention != 0 {
		t.Fatalf("unexpected writer %+v", w)
	}
}
