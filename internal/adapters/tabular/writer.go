package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// rowIDPrefix salts the SHA1 row ids so they cannot collide with ids from
// other exports hashing the same player key.
const rowIDPrefix = "fantacopilot/valuation/"

// WriteFile exports the valuation table to the CSV at path.
func WriteFile(path string, res *model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write exports the valuation table as CSV. Columns are the identity and
// raw stat columns in schema order, then every extra and derived column in
// sorted order so the layout is stable across runs.
func Write(w io.Writer, res *model.Result) error {
	extraCols := unionExtraColumns(res.Players)
	metricCols := unionMetricColumns(res.Players)

	header := []string{
		"id", colPlayerName, colPosition, colBirthday, colSeason,
		colStatsTeam, colCurrentTeam,
	}
	for _, c := range statColumns {
		header = append(header, c.name)
	}
	header = append(header, extraCols...)
	header = append(header, metricCols...)
	header = append(header,
		"injury_band",
		"perf_gk", "perf_def", "perf_mid", "perf_fwd",
		"role_perf", "performance_percentile",
		"tags", "stars",
		"xfp_per_90", "xfp_season",
		"price_expected", "price_low", "price_high",
		"fallback_count",
	)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range res.Players {
		if err := cw.Write(valuationRow(p, extraCols, metricCols)); err != nil {
			return fmt.Errorf("write row for %s: %w", p.Record.PlayerName, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// RowID derives a stable id for one player from the identity key, so
// re-running the pipeline never renumbers the table.
func RowID(rec model.PlayerSeasonRecord) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(rowIDPrefix+rec.Key())).String()
}

func valuationRow(p model.Valuation, extraCols, metricCols []string) []string {
	rec := p.Record
	row := []string{
		RowID(rec),
		rec.PlayerName,
		rec.Role.String(),
		rec.Birthday,
		strconv.Itoa(rec.Season),
		rec.StatsTeam,
		rec.CurrentTeam,
	}
	for _, c := range statColumns {
		row = append(row, formatFloat(*c.field(&rec.Stats)))
	}
	for _, name := range extraCols {
		row = append(row, formatFloat(rec.Extra[name]))
	}
	for _, name := range metricCols {
		row = append(row, formatFloat(p.Metrics.Get(name)))
	}
	row = append(row,
		model.BandInjuryRisk(p.Metrics.Get(model.MetricInjuryRisk)).String(),
		formatFloat(p.Perf[model.Goalkeeper]),
		formatFloat(p.Perf[model.Defender]),
		formatFloat(p.Perf[model.Midfielder]),
		formatFloat(p.Perf[model.Forward]),
		formatFloat(p.RolePerf),
		formatFloat(p.PerfPercentile),
		strings.Join(p.Tags, ";"),
		strconv.Itoa(p.Stars),
		formatFloat(p.XFP90),
		formatFloat(p.XFPSeason),
		strconv.Itoa(p.PriceExpected),
		strconv.Itoa(p.RangeLow),
		strconv.Itoa(p.RangeHigh),
		strconv.Itoa(len(p.Fallbacks)),
	)
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func unionExtraColumns(players []model.Valuation) []string {
	seen := make(map[string]struct{})
	for _, p := range players {
		for name := range p.Record.Extra {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func unionMetricColumns(players []model.Valuation) []string {
	seen := make(map[string]struct{})
	for _, p := range players {
		for name := range p.Metrics {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
