// Package dataset loads the engine's tabular inputs from CSV with strict
// schema contracts. Missing required columns, unparseable dtypes, and
// duplicate keys are fatal; the engine never runs on silently coerced data.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/gridiron/internal/models"
)

// table wraps parsed CSV content with a header index
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func readTable(path, name string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", name, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse %s: %w", name, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %s is empty", name, path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return &table{name: name, columns: columns, rows: records[1:]}, nil
}

// requireColumns fails with the full list of absent columns so the caller can
// fix the feed in one pass.
func (t *table) requireColumns(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s (found: %s)",
			t.name, models.ErrMissingColumn, strings.Join(missing, ", "), t.columnList())
	}
	return nil
}

func (t *table) columnList() string {
	cols := make([]string, 0, len(t.columns))
	for c := range t.columns {
		cols = append(cols, c)
	}
	return strings.Join(cols, ", ")
}

func (t *table) hasColumn(col string) bool {
	_, ok := t.columns[col]
	return ok
}

// cell returns the raw value, or "" when the column is absent
func (t *table) cell(row []string, col string) string {
	idx, ok := t.columns[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// floatCell parses a numeric cell, returning NaN for blank or unparseable
// values. Required-numeric enforcement is done by the individual loaders.
func (t *table) floatCell(row []string, col string) float64 {
	raw := t.cell(row, col)
	if raw == "" {
		return math.NaN()
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return math.NaN()
	}
	f, _ := d.Float64()
	return f
}

// lineCell parses a market line (spread or total) and quantizes it to the
// half-point grid the market actually posts on.
func (t *table) lineCell(row []string, col string) float64 {
	raw := t.cell(row, col)
	if raw == "" {
		return math.NaN()
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return math.NaN()
	}
	// round to nearest 0.5
	half := d.Mul(decimal.NewFromInt(2)).Round(0).Div(decimal.NewFromInt(2))
	f, _ := half.Float64()
	return f
}

// boolCell parses truthy strings the way the upstream feeds write them
func (t *table) boolCell(row []string, col string) bool {
	switch strings.ToLower(t.cell(row, col)) {
	case "1", "true", "yes", "y", "t":
		return true
	}
	return false
}

var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// timeCell parses a kickoff timestamp, returning the zero time when no
// layout matches.
func (t *table) timeCell(row []string, col string) time.Time {
	raw := t.cell(row, col)
	for _, layout := range kickoffLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
