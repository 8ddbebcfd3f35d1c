package mlbstats

import "time"

const (
	providerName       = "mlbstats"
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultSportID     = 1
	defaultHTTPTimeout = 15 * time.Second
	defaultTimezone    = "America/New_York"
	defaultChunkDays   = 62
	maxErrorBody       = 512

	gameTypeRegular = "R"
	stateFinal      = "Final"
)

// detailed states that can sit under a Final abstract state without a decided game.
var excludedStates = []string{"Postponed", "Suspended", "Cancelled"}
