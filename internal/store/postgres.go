package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

const schema = `
CREATE TABLE IF NOT EXISTS streak_runs (
	run_id       UUID PRIMARY KEY,
	season       INTEGER NOT NULL,
	threshold    INTEGER NOT NULL,
	start_date   DATE NOT NULL,
	end_date     DATE NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL,
	teams        INTEGER NOT NULL,
	failures     INTEGER NOT NULL,
	partial      BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS streaks (
	run_id      UUID NOT NULL REFERENCES streak_runs(run_id) ON DELETE CASCADE,
	rank        INTEGER NOT NULL,
	season      INTEGER NOT NULL,
	team_id     TEXT NOT NULL,
	team_name   TEXT NOT NULL,
	streak_type TEXT NOT NULL,
	length      INTEGER NOT NULL,
	start_date  DATE NOT NULL,
	end_date    DATE NOT NULL,
	PRIMARY KEY (run_id, rank)
);

CREATE INDEX IF NOT EXISTS streaks_season_length_idx ON streaks (season, length DESC);
`

// A single statement keeps the run row and its streak rows atomic.
const insertRun = `
WITH run AS (
	INSERT INTO streak_runs (run_id, season, threshold, start_date, end_date, generated_at, teams, failures, partial)
	VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8, $9)
	RETURNING run_id, season
)
INSERT INTO streaks (run_id, rank, season, team_id, team_name, streak_type, length, start_date, end_date)
SELECT run.run_id, s.rank, run.season, s.team_id, s.team_name, s.streak_type, s.length, s.start_date::date, s.end_date::date
FROM run, unnest($10::int[], $11::text[], $12::text[], $13::text[], $14::int[], $15::text[], $16::text[])
	AS s(rank, team_id, team_name, streak_type, length, start_date, end_date)
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// PostgresStore persists run reports as rows keyed by run id.
type PostgresStore struct {
	db   execer
	conn *sql.DB
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db, conn: db}, nil
}

func newPostgresStore(db execer) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Name identifies the sink in logs.
func (s *PostgresStore) Name() string {
	return "postgres"
}

// EnsureSchema creates the tables when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Write stores the report as a run sink.
func (s *PostgresStore) Write(ctx context.Context, rep report.Report) error {
	return s.SaveRun(ctx, rep)
}

// SaveRun inserts the run and one row per streak, ranked in report order.
func (s *PostgresStore) SaveRun(ctx context.Context, rep report.Report) error {
	if s == nil || s.db == nil {
		return errors.New("postgres store not configured")
	}
	if rep.RunID == "" {
		return errors.New("run id required")
	}

	n := len(rep.Streaks)
	var (
		ranks   = make([]int64, n)
		ids     = make([]string, n)
		names   = make([]string, n)
		types   = make([]string, n)
		lengths = make([]int64, n)
		starts  = make([]string, n)
		ends    = make([]string, n)
	)
	for i, st := range rep.Streaks {
		ranks[i] = int64(i + 1)
		ids[i] = st.Team.ID
		names[i] = st.Team.Name
		types[i] = string(st.Type)
		lengths[i] = int64(st.Length)
		starts[i] = timeutil.FormatDate(st.Start)
		ends[i] = timeutil.FormatDate(st.End)
	}

	_, err := s.db.ExecContext(ctx, insertRun,
		rep.RunID, rep.Season, rep.Threshold, rep.StartDate, rep.EndDate, rep.GeneratedAt,
		rep.Teams, len(rep.Failures), rep.Partial,
		pq.Array(ranks), pq.Array(ids), pq.Array(names), pq.Array(types),
		pq.Array(lengths), pq.Array(starts), pq.Array(ends),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rep.RunID, err)
	}
	return nil
}
