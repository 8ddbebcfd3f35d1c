package store

import (
	"context"
	"sync"

	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
)

// MemoryStore keeps the most recent report per season in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[int]report.Report
	latest  int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[int]report.Report),
	}
}

// Name identifies the sink in logs.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Write stores the report as a run sink.
func (s *MemoryStore) Write(ctx context.Context, rep report.Report) error {
	_ = ctx
	s.SetReport(rep)
	return nil
}

// SetReport replaces the season's report and marks it as the latest.
func (s *MemoryStore) SetReport(rep report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[rep.Season] = rep
	s.latest = rep.Season
}

// Latest returns the most recently stored report.
func (s *MemoryStore) Latest() (report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[s.latest]
	return rep, ok
}

// Report returns the stored report for a season.
func (s *MemoryStore) Report(season int) (report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[season]
	return rep, ok
}
