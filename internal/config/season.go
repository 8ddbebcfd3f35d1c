package config

import (
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// SeasonConfig selects the season, its date window and the scan parameters.
type SeasonConfig struct {
	Season      int
	Start       string // YYYY-MM-DD, empty for the season default
	End         string
	Threshold   int
	Workers     int
	TeamTimeout time.Duration
}

func loadSeason(at time.Time) SeasonConfig {
	return SeasonConfig{
		Season:      intEnvOrDefault(envSeason, at.Year()),
		Start:       envOrDefault(envSeasonStart, ""),
		End:         envOrDefault(envSeasonEnd, ""),
		Threshold:   intEnvOrDefault(envThreshold, defaultThreshold),
		Workers:     intEnvOrDefault(envWorkers, defaultWorkers),
		TeamTimeout: durationEnvOrDefault(envTeamTimeout, defaultTeamTimeout),
	}
}

// Window resolves the schedule window for the configured season.
func (c SeasonConfig) Window() (timeutil.Window, error) {
	return timeutil.ParseWindow(c.Season, c.Start, c.End)
}
