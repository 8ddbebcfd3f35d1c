package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string as a UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDate drops the time of day, keeping the calendar date as seen in t's location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Window is an inclusive range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// SeasonWindow returns the default schedule window for a season: March 1 through November 30.
func SeasonWindow(season int) Window {
	return Window{
		Start: time.Date(season, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(season, time.November, 30, 0, 0, 0, 0, time.UTC),
	}
}

// ParseWindow builds a window from YYYY-MM-DD bounds, falling back to the season default for empty values.
func ParseWindow(season int, start, end string) (Window, error) {
	w := SeasonWindow(season)
	if start != "" {
		parsed, err := ParseDate(start)
		if err != nil {
			return Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		w.Start = parsed
	}
	if end != "" {
		parsed, err := ParseDate(end)
		if err != nil {
			return Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		w.End = parsed
	}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("window end %s before start %s", FormatDate(w.End), FormatDate(w.Start))
	}
	return w, nil
}

// Contains reports whether t falls on a date inside the window.
func (w Window) Contains(t time.Time) bool {
	d := CalendarDate(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// String renders the window as start..end.
func (w Window) String() string {
	return FormatDate(w.Start) + ".." + FormatDate(w.End)
}

// LoadLocation returns the first IANA zone in names that loads, or UTC.
func LoadLocation(names ...string) *time.Location {
	for _, name := range names {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
