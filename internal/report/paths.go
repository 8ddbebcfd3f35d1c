package report

import (
	"fmt"
	"path/filepath"
)

const (
	reportsDir   = "reports"
	manifestName = "manifest.json"
)

// ReportPath builds the path to a season's JSON report.
func ReportPath(basePath string, season int) string {
	return filepath.Join(basePath, reportsDir, fmt.Sprintf("%d.json", season))
}

// ManifestPath builds the path to the reports manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, reportsDir, manifestName)
}

// CSVPath builds the path to a season's CSV export.
func CSVPath(basePath string, season int) string {
	return filepath.Join(basePath, CSVFileName(season))
}

// CSVFileName is the file name used for a season's CSV export.
func CSVFileName(season int) string {
	return fmt.Sprintf("mlb_streaks_%d.csv", season)
}
