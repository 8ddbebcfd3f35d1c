package streaks

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
)

// ErrMalformedRosterEntry marks a roster entry without an id or a name.
var ErrMalformedRosterEntry = errors.New("malformed roster entry")

// ValidateEntry reports ErrMalformedRosterEntry for entries missing an id or a name.
func ValidateEntry(e teams.RosterEntry) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id (name %q)", ErrMalformedRosterEntry, e.Name)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: missing name (id %q)", ErrMalformedRosterEntry, e.ID)
	}
	return nil
}

// ActiveRoster keeps active, well-formed entries in their original order.
// Malformed entries are skipped with a warning.
func ActiveRoster(entries []teams.RosterEntry, logger *slog.Logger) []teams.Team {
	out := make([]teams.Team, 0, len(entries))
	for _, e := range entries {
		if !e.Active {
			continue
		}
		if err := ValidateEntry(e); err != nil {
			logging.Warn(logger, "skipping roster entry", "error", err)
			continue
		}
		out = append(out, e.Team())
	}
	return out
}
