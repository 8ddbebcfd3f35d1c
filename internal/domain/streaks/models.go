package streaks

import (
	"strconv"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// Type mirrors the outcome that every game in the streak shares.
type Type string

const (
	TypeWin  Type = "WIN"
	TypeLoss Type = "LOSS"
)

// TypeOf maps a game outcome to the streak type it forms.
func TypeOf(o games.Outcome) Type {
	if o == games.OutcomeWin {
		return TypeWin
	}
	return TypeLoss
}

// ParseType accepts WIN or LOSS (case sensitive) and reports whether it matched.
func ParseType(raw string) (Type, bool) {
	switch Type(raw) {
	case TypeWin, TypeLoss:
		return Type(raw), true
	default:
		return "", false
	}
}

// Streak is a maximal run of identical outcomes for one team.
// Start and End are inclusive.
type Streak struct {
	Team   teams.Team `json:"team"`
	Type   Type       `json:"type"`
	Length int        `json:"length"`
	Start  time.Time  `json:"startDate"`
	End    time.Time  `json:"endDate"`
}

// Row returns the sink row: team name, type, length, start, end (ISO dates).
func (s Streak) Row() []string {
	return []string{
		s.Team.Name,
		string(s.Type),
		strconv.Itoa(s.Length),
		timeutil.FormatDate(s.Start),
		timeutil.FormatDate(s.End),
	}
}

// Collection accumulates streaks across teams. Appends are safe for concurrent use.
type Collection struct {
	mu    sync.Mutex
	items []Streak
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Append adds streaks in the order given.
func (c *Collection) Append(items ...Streak) {
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, items...)
}

// Items returns a copy of the collected streaks in append order.
func (c *Collection) Items() []Streak {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Streak, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports how many streaks were collected.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
