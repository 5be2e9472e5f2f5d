// Package tabular reads the raw player-statistics table and writes the
// valuation table. Ingestion is lenient: malformed numeric cells degrade
// to 0 and are reported as fallbacks, never as errors.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// StageName identifies ingestion in fallback diagnostics.
const StageName = "ingest"

// Row is one ingested record plus the coercion fallbacks applied to it.
type Row struct {
	Record    model.PlayerSeasonRecord
	Fallbacks []model.Fallback
}

// ReadResult is the outcome of ingesting one table.
type ReadResult struct {
	Rows     []Row
	Ingested int // raw data rows read, including rejected ones
	Rejected int // rows skipped for missing identity or unknown role
}

// ReadFile ingests the CSV at path.
func ReadFile(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read ingests a CSV table. The header row is normalized to snake_case and
// mapped onto the typed stat columns; numeric columns without a typed field
// are kept in the record's Extra map so the output can echo them back.
func Read(r io.Reader) (*ReadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = canonicalColumn(h)
	}
	if !contains(cols, colPlayerName) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colPlayerName)
	}
	if !contains(cols, colPosition) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colPosition)
	}

	res := &ReadResult{}
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", res.Ingested+1, err)
		}
		res.Ingested++

		row, ok := parseRow(cols, cells)
		if !ok {
			res.Rejected++
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// parseRow maps one data row onto a record. Rows without a player name or
// with an unknown position are unusable and rejected.
func parseRow(cols, cells []string) (Row, bool) {
	var row Row
	rec := &row.Record
	rec.Extra = make(map[string]float64)

	fallback := func(field string) {
		row.Fallbacks = append(row.Fallbacks, model.Fallback{Stage: StageName, Field: field})
	}

	for i, name := range cols {
		if i >= len(cells) {
			break
		}
		cell := strings.TrimSpace(cells[i])

		switch name {
		case colPlayerName:
			rec.PlayerName = cell
			continue
		case colPosition:
			role, err := model.ParseRole(cell)
			if err != nil {
				return Row{}, false
			}
			rec.Role = role
			continue
		case colBirthday:
			rec.Birthday = cell
			continue
		case colStatsTeam:
			rec.StatsTeam = cell
			continue
		case colCurrentTeam:
			rec.CurrentTeam = cell
			continue
		case colSeason:
			rec.Season = parseSeason(cell)
			continue
		}

		if field, ok := statByName[name]; ok {
			v, ok := parseNumber(cell)
			if !ok {
				fallback(name)
			}
			*field(&rec.Stats) = v
			continue
		}

		// Unknown column: keep it when it is numeric, drop it otherwise.
		if v, ok := parseNumber(cell); ok {
			rec.Extra[name] = v
		}
	}

	if rec.PlayerName == "" {
		return Row{}, false
	}
	return row, true
}

// parseNumber coerces a cell to a float. Empty and malformed cells yield
// (0, false); the caller decides whether that is a fallback.
func parseNumber(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}
	cell = strings.ReplaceAll(cell, ",", ".")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseSeason turns "2024/2025" (or "2024-2025") into the compact year
// pair 2425. Plain integers pass through; anything else becomes 0.
func parseSeason(cell string) int {
	if i := strings.IndexAny(cell, "/-"); i > 0 {
		a, errA := strconv.Atoi(strings.TrimSpace(cell[:i]))
		b, errB := strconv.Atoi(strings.TrimSpace(cell[i+1:]))
		if errA == nil && errB == nil {
			return (a%100)*100 + b%100
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0
	}
	return n
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
