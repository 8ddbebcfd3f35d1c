package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks which season reports exist on disk.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Retention   Retention   `json:"retention"`
	Reports     ReportsMeta `json:"reports"`
}

// Retention records how many seasons are kept; zero keeps all of them.
type Retention struct {
	Seasons int `json:"seasons"`
}

type ReportsMeta struct {
	Seasons       []int     `json:"seasons"`
	LastRunID     string    `json:"lastRunId"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retention int) Manifest {
	return Manifest{
		Version:   1,
		Retention: Retention{Seasons: retention},
		Reports:   ReportsMeta{Seasons: []int{}},
	}
}

func readManifest(path string, retention int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
