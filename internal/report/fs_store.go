package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrReportNotFound is returned when no report exists for a season.
var ErrReportNotFound = errors.New("report not found")

// FSStore loads season reports from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed report store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadReport reads {basePath}/reports/{season}.json.
func (s *FSStore) LoadReport(season int) (Report, error) {
	if s == nil {
		return Report{}, errors.New("report store not configured")
	}
	if season <= 0 {
		return Report{}, errors.New("season required")
	}
	var rep Report
	if err := decodeFile(ReportPath(s.basePath, season), &rep); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: season %d", ErrReportNotFound, season)
		}
		return Report{}, err
	}
	return rep, nil
}

// Seasons lists the seasons recorded in the manifest.
func (s *FSStore) Seasons() ([]int, error) {
	if s == nil {
		return nil, errors.New("report store not configured")
	}
	var m Manifest
	if err := decodeFile(ManifestPath(s.basePath), &m); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []int{}, nil
		}
		return nil, err
	}
	return m.Reports.Seasons, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
