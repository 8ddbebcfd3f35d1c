package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
)

// CSVHeader is the column order of the CSV export.
var CSVHeader = []string{"Team", "StreakType", "Length", "StartDate", "EndDate"}

// CSVWriter exports a report's streaks to <basePath>/mlb_streaks_<season>.csv.
type CSVWriter struct {
	basePath string
}

// NewCSVWriter constructs a CSV sink rooted at basePath.
func NewCSVWriter(basePath string) *CSVWriter {
	return &CSVWriter{basePath: basePath}
}

// Name identifies the sink in logs.
func (w *CSVWriter) Name() string {
	return "csv"
}

// Path returns where the season's CSV is written.
func (w *CSVWriter) Path(season int) string {
	return CSVPath(w.basePath, season)
}

// Write renders the report's streaks in their stored order and replaces the season file.
func (w *CSVWriter) Write(ctx context.Context, rep Report) error {
	_ = ctx
	if rep.Season <= 0 {
		return errors.New("season required")
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep.Streaks); err != nil {
		return err
	}
	return writeAtomic(w.Path(rep.Season), buf.Bytes())
}

// WriteCSV writes the header then one row per streak.
func WriteCSV(out io.Writer, items []domainstreaks.Streak) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, s := range items {
		if err := cw.Write(s.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is one CSV line as read back from disk. Type is kept raw so unknown values survive.
type Row struct {
	Team      string
	Type      string
	Length    int
	StartDate string
	EndDate   string
}

// ReadCSV parses an export written by WriteCSV. Columns are matched by header name and
// rows whose Length is not an integer are skipped.
func ReadCSV(in io.Reader) ([]Row, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Row{}, nil
		}
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	if _, ok := idx["Length"]; !ok {
		return nil, fmt.Errorf("csv missing column %q", "Length")
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		length, convErr := strconv.Atoi(field(record, "Length"))
		if convErr != nil {
			continue
		}
		rows = append(rows, Row{
			Team:      field(record, "Team"),
			Type:      field(record, "StreakType"),
			Length:    length,
			StartDate: field(record, "StartDate"),
			EndDate:   field(record, "EndDate"),
		})
	}
	return rows, nil
}
