package tabular

import (
	"strings"
	"unicode"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// statColumn binds one canonical snake_case column name to its typed field.
// The slice order is also the raw-stat column order of the exported table.
type statColumn struct {
	name  string
	field func(*model.Stats) *float64
}

var statColumns = []statColumn{
	{"appearances_total", func(s *model.Stats) *float64 { return &s.Appearances }},
	{"lineups_total", func(s *model.Stats) *float64 { return &s.Lineups }},
	{"minutes_played_total", func(s *model.Stats) *float64 { return &s.MinutesPlayed }},
	{"bench_total", func(s *model.Stats) *float64 { return &s.Bench }},
	{"goals_total", func(s *model.Stats) *float64 { return &s.Goals }},
	{"goals_penalties", func(s *model.Stats) *float64 { return &s.GoalsPenalties }},
	{"assists_total", func(s *model.Stats) *float64 { return &s.Assists }},
	{"shots_total_total", func(s *model.Stats) *float64 { return &s.ShotsTotal }},
	{"shots_on_target_total", func(s *model.Stats) *float64 { return &s.ShotsOnTarget }},
	{"key_passes_total", func(s *model.Stats) *float64 { return &s.KeyPasses }},
	{"big_chances_created_total", func(s *model.Stats) *float64 { return &s.BigChancesCreated }},
	{"total_crosses_total", func(s *model.Stats) *float64 { return &s.CrossesTotal }},
	{"accurate_crosses_total", func(s *model.Stats) *float64 { return &s.CrossesAccurate }},
	{"dribble_attempts_total", func(s *model.Stats) *float64 { return &s.DribbleAttempts }},
	{"successful_dribbles_total", func(s *model.Stats) *float64 { return &s.DribblesSucceeded }},
	{"total_duels_total", func(s *model.Stats) *float64 { return &s.DuelsTotal }},
	{"duels_won_total", func(s *model.Stats) *float64 { return &s.DuelsWon }},
	{"aerials_won_total", func(s *model.Stats) *float64 { return &s.AerialsWon }},
	{"tackles_total", func(s *model.Stats) *float64 { return &s.Tackles }},
	{"interceptions_total", func(s *model.Stats) *float64 { return &s.Interceptions }},
	{"clearances_total", func(s *model.Stats) *float64 { return &s.Clearances }},
	{"shots_blocked_total", func(s *model.Stats) *float64 { return &s.ShotsBlocked }},
	{"cleansheets_total", func(s *model.Stats) *float64 { return &s.CleanSheets }},
	{"goals_conceded_total", func(s *model.Stats) *float64 { return &s.GoalsConceded }},
	{"saves_total", func(s *model.Stats) *float64 { return &s.Saves }},
	{"saves_insidebox_total", func(s *model.Stats) *float64 { return &s.SavesInsideBox }},
	{"penalties_saved", func(s *model.Stats) *float64 { return &s.PenaltiesSaved }},
	{"penalties_total", func(s *model.Stats) *float64 { return &s.PenaltiesTotal }},
	{"penalties_scored", func(s *model.Stats) *float64 { return &s.PenaltiesScored }},
	{"yellowcards_total", func(s *model.Stats) *float64 { return &s.YellowCards }},
	{"redcards_total", func(s *model.Stats) *float64 { return &s.RedCards }},
	{"yellowred_cards_total", func(s *model.Stats) *float64 { return &s.YellowRedCards }},
	{"own_goals_total", func(s *model.Stats) *float64 { return &s.OwnGoals }},
	{"injuries_total", func(s *model.Stats) *float64 { return &s.Injuries }},
	{"rating_average", func(s *model.Stats) *float64 { return &s.RatingAverage }},
}

var statByName = func() map[string]func(*model.Stats) *float64 {
	m := make(map[string]func(*model.Stats) *float64, len(statColumns))
	for _, c := range statColumns {
		m[c.name] = c.field
	}
	return m
}()

// Text column names, with the aliases the various scraper exports use.
const (
	colPlayerName  = "player_name"
	colPosition    = "position"
	colBirthday    = "birthday"
	colStatsTeam   = "stats_team"
	colCurrentTeam = "current_team"
	colSeason      = "season"
)

var textAliases = map[string]string{
	"name":          colPlayerName,
	"player":        colPlayerName,
	"role":          colPosition,
	"position_name": colPosition,
	"date_of_birth": colBirthday,
	"team":          colStatsTeam,
	"team_name":     colStatsTeam,
	"season_name":   colSeason,
}

// ToSnake normalizes a raw header cell to the canonical snake_case form:
// lowercase, word boundaries and separators become single underscores.
func ToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		case r == ' ' || r == '-' || r == '.' || r == '/' || r == '(' || r == ')':
			b.WriteByte('_')
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// canonicalColumn resolves a raw header cell to its canonical name.
func canonicalColumn(raw string) string {
	name := ToSnake(raw)
	if alias, ok := textAliases[name]; ok {
		return alias
	}
	return name
}
