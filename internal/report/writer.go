package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Writer persists season reports and the manifest, pruning old seasons.
type Writer struct {
	basePath  string
	retention int
	now       func() time.Time
}

// NewWriter constructs a writer rooted at basePath keeping the newest retention seasons (0 keeps all).
func NewWriter(basePath string, retention int) *Writer {
	if retention < 0 {
		retention = 0
	}
	return &Writer{
		basePath:  basePath,
		retention: retention,
		now:       time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Name identifies the sink in logs.
func (w *Writer) Name() string {
	return "json"
}

// Write stores the report as a run sink.
func (w *Writer) Write(ctx context.Context, rep Report) error {
	_ = ctx
	return w.WriteReport(rep)
}

// WriteReport writes reports/<season>.json and refreshes the manifest.
func (w *Writer) WriteReport(rep Report) error {
	if w == nil {
		return errors.New("report writer not configured")
	}
	if rep.Season <= 0 {
		return errors.New("season required")
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	if err := writeAtomic(ReportPath(w.basePath, rep.Season), data); err != nil {
		return err
	}
	return w.updateManifest(rep)
}

func (w *Writer) updateManifest(rep Report) error {
	m, _ := readManifest(ManifestPath(w.basePath), w.retention)

	seasons, err := w.listSeasons()
	if err != nil {
		return err
	}
	kept := w.prune(seasons)

	m.Retention.Seasons = w.retention
	m.Reports.Seasons = kept
	m.Reports.LastRunID = rep.RunID
	m.Reports.LastRefreshed = w.now().UTC()
	return writeManifest(w.basePath, m, w.now())
}

func (w *Writer) listSeasons() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, reportsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, err
	}
	seasons := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" || name == manifestName {
			continue
		}
		season, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons, nil
}

// prune removes all but the newest seasons and returns the survivors ascending.
func (w *Writer) prune(seasons []int) []int {
	if w.retention == 0 || len(seasons) <= w.retention {
		return seasons
	}
	cut := len(seasons) - w.retention
	for _, s := range seasons[:cut] {
		_ = os.Remove(ReportPath(w.basePath, s))
	}
	return seasons[cut:]
}
