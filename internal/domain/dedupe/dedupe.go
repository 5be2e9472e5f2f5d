// Package dedupe enforces the one-row-per (player, season, team) invariant
// and narrows the dataset to the season window the pipeline scores on.
package dedupe

import (
	"sort"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// DefaultSeasonWindow keeps the two most recent seasons before scoring.
const DefaultSeasonWindow = 2

// Collapse merges duplicate (player, season, team) rows, keeping the row
// with the most minutes played: scraper re-runs occasionally emit the
// same player-season twice with stale partials. The second return value
// counts collapsed rows.
func Collapse(records []model.PlayerSeasonRecord) ([]model.PlayerSeasonRecord, int) {
	byKey := make(map[string]int, len(records))
	out := make([]model.PlayerSeasonRecord, 0, len(records))
	collapsed := 0

	for _, rec := range records {
		key := rec.RowKey()
		if i, ok := byKey[key]; ok {
			collapsed++
			if rec.Stats.MinutesPlayed > out[i].Stats.MinutesPlayed {
				out[i] = rec
			}
			continue
		}
		byKey[key] = len(out)
		out = append(out, rec)
	}
	return out, collapsed
}

// RecentSeasons keeps only rows belonging to the `window` most recent
// seasons present in the dataset.
func RecentSeasons(records []model.PlayerSeasonRecord, window int) []model.PlayerSeasonRecord {
	if window <= 0 {
		window = DefaultSeasonWindow
	}

	seen := make(map[int]struct{})
	for _, rec := range records {
		seen[rec.Season] = struct{}{}
	}
	if len(seen) <= window {
		return records
	}

	seasons := make([]int, 0, len(seen))
	for s := range seen {
		seasons = append(seasons, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seasons)))
	cutoff := seasons[window-1]

	out := make([]model.PlayerSeasonRecord, 0, len(records))
	for _, rec := range records {
		if rec.Season >= cutoff {
			out = append(out, rec)
		}
	}
	return out
}

// LatestPerPlayer reduces to one row per player: the most recent season,
// breaking season ties by minutes played so the fuller row wins.
func LatestPerPlayer(records []model.PlayerSeasonRecord) []model.PlayerSeasonRecord {
	byKey := make(map[string]int, len(records))
	out := make([]model.PlayerSeasonRecord, 0, len(records))

	for _, rec := range records {
		key := rec.Key()
		i, ok := byKey[key]
		if !ok {
			byKey[key] = len(out)
			out = append(out, rec)
			continue
		}
		cur := out[i]
		if rec.Season > cur.Season ||
			(rec.Season == cur.Season && rec.Stats.MinutesPlayed > cur.Stats.MinutesPlayed) {
			out[i] = rec
		}
	}
	return out
}
