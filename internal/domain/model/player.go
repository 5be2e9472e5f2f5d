// Package model contains domain models passed between pipeline stages.
package model

import "strconv"

// Stats holds the raw counting statistics of one player-season.
// All values are best-effort coerced at ingestion; absent or malformed
// cells are 0 so that every downstream division stays total.
type Stats struct {
	Appearances    float64
	Lineups        float64
	MinutesPlayed  float64
	Bench          float64
	Goals          float64
	GoalsPenalties float64
	Assists        float64

	ShotsTotal        float64
	ShotsOnTarget     float64
	KeyPasses         float64
	BigChancesCreated float64
	CrossesTotal      float64
	CrossesAccurate   float64

	DribbleAttempts   float64
	DribblesSucceeded float64
	DuelsTotal        float64
	DuelsWon          float64
	AerialsWon        float64

	Tackles       float64
	Interceptions float64
	Clearances    float64
	ShotsBlocked  float64
	CleanSheets   float64
	GoalsConceded float64

	Saves          float64
	SavesInsideBox float64
	PenaltiesSaved float64
	PenaltiesTotal float64

	PenaltiesScored float64
	YellowCards     float64
	RedCards        float64
	YellowRedCards  float64
	OwnGoals        float64
	Injuries        float64

	RatingAverage float64
}

// PlayerSeasonRecord is one raw input row: one player, one season, one team.
type PlayerSeasonRecord struct {
	PlayerName  string
	Role        Role
	StatsTeam   string
	CurrentTeam string
	Birthday    string // may be empty
	Season      int    // year pair, e.g. 2425
	Stats       Stats

	// Extra keeps numeric input columns that have no typed field so the
	// output table can echo the full raw row back to the caller.
	Extra map[string]float64
}

// Key identifies a player across seasons. Names are not unique in the raw
// data; the birthday disambiguates homonyms where it is present.
func (r PlayerSeasonRecord) Key() string {
	return r.PlayerName + "|" + r.Birthday
}

// RowKey identifies a single raw row per the one-row-per
// (player, season, team) invariant.
func (r PlayerSeasonRecord) RowKey() string {
	return r.PlayerName + "|" + strconv.Itoa(r.Season) + "|" + r.StatsTeam
}
