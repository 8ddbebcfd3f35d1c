package mlbstats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// Config controls how the client reaches the MLB stats API.
type Config struct {
	BaseURL    string
	SportID    int
	HTTPClient *http.Client
	Timezone   string
	// ChunkDays splits long schedule windows into several requests.
	ChunkDays int
}

// Client fetches rosters and schedules from the MLB stats API and maps them to domain models.
type Client struct {
	baseURL    string
	sportID    int
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	chunkDays  int
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	loc := timeutil.LoadLocation(cfg.Timezone, defaultTimezone)
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		sportID:    resolveSportID(cfg.SportID),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        loc,
		chunkDays:  resolveChunkDays(cfg.ChunkDays),
	}
}

// FetchRoster lists every team the API knows for the season, active or not.
func (c *Client) FetchRoster(ctx context.Context, season int) ([]teams.RosterEntry, error) {
	q := map[string]string{
		"sportId": strconv.Itoa(c.sportID),
		"season":  strconv.Itoa(season),
	}

	var payload teamsResponse
	if err := c.get(ctx, "/teams", q, &payload); err != nil {
		return nil, err
	}

	entries := make([]teams.RosterEntry, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		entries = append(entries, mapRosterEntry(t))
	}
	return entries, nil
}

// FetchResults returns the team's finalized regular-season decisions inside the window.
// Games seen more than once (resumed games, overlapping chunks) are reported once.
func (c *Client) FetchResults(ctx context.Context, teamID string, window timeutil.Window) ([]games.Result, error) {
	id, err := strconv.Atoi(teamID)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s: invalid team id %q", providerName, teamID)
	}

	results := make([]games.Result, 0)
	seen := make(map[int]int)

	for _, chunk := range splitWindow(window, c.chunkDays) {
		q := map[string]string{
			"sportId":   strconv.Itoa(c.sportID),
			"teamId":    teamID,
			"startDate": timeutil.FormatDate(chunk.Start),
			"endDate":   timeutil.FormatDate(chunk.End),
			"gameType":  gameTypeRegular,
		}

		var payload scheduleResponse
		if err := c.get(ctx, "/schedule", q, &payload); err != nil {
			return nil, err
		}

		for _, day := range payload.Dates {
			for _, g := range day.Games {
				res, ok := mapResult(g, id, c.loc)
				if !ok || !window.Contains(res.Date) {
					continue
				}
				if idx, dup := seen[g.GamePk]; dup && g.GamePk != 0 {
					results[idx] = res
					continue
				}
				seen[g.GamePk] = len(results)
				results = append(results, res)
			}
		}
	}

	return results, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode %s: %w", providerName, path, err)
	}
	return nil
}

// splitWindow cuts w into consecutive inclusive windows of at most days days.
func splitWindow(w timeutil.Window, days int) []timeutil.Window {
	if days <= 0 || w.End.Before(w.Start) {
		return []timeutil.Window{w}
	}
	var out []timeutil.Window
	for start := w.Start; !start.After(w.End); start = start.AddDate(0, 0, days) {
		end := start.AddDate(0, 0, days-1)
		if end.After(w.End) {
			end = w.End
		}
		out = append(out, timeutil.Window{Start: start, End: end})
	}
	return out
}
