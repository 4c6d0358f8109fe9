package models

import (
	"fmt"
	"math"
	"time"
)

// SpreadConsistencyTolerance is the maximum allowed disagreement between
// spread_home and -spread_away before a line row is rejected.
const SpreadConsistencyTolerance = 0.5

// GameLine represents the market line for one scheduled game. Total is NaN
// when the market total is not posted; SpreadKnown is false when no spread
// was available and 0.0 (pick'em) was substituted.
type GameLine struct {
	HomeTeam    string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string    `db:"away_team" json:"away_team" validate:"required"`
	SpreadHome  float64   `db:"spread_home" json:"spread_home"`
	Total       float64   `db:"total" json:"total"`
	Kickoff     time.Time `db:"kickoff_utc" json:"kickoff_utc"`
	NeutralSite bool      `db:"neutral_site" json:"neutral_site"`
	SpreadKnown bool      `db:"-" json:"-"`
}

// HasTotal reports whether the market posted a total for this game
func (g *GameLine) HasTotal() bool {
	return !math.IsNaN(g.Total)
}

// GameID returns the stable identifier used on game cards:
// AWY@HOM_YYYYMMDDTHHMMZ, with NA when kickoff is unknown.
func (g *GameLine) GameID() string {
	ts := "NA"
	if !g.Kickoff.IsZero() {
		ts = g.Kickoff.UTC().Format("20060102T1504Z")
	}
	return fmt.Sprintf("%s@%s_%s", g.AwayTeam, g.HomeTeam, ts)
}

// Validate checks required fields and the spread consistency invariant
// against an optional away spread (NaN when the feed omitted it).
func (g *GameLine) Validate(spreadAway float64) error {
	if g.HomeTeam == "" || g.AwayTeam == "" {
		return fmt.Errorf("game line: %w", ErrTeamCodeRequired)
	}
	if g.HomeTeam == g.AwayTeam {
		return fmt.Errorf("game line %s: home and away teams are identical", g.HomeTeam)
	}
	if !math.IsNaN(spreadAway) && math.Abs(g.SpreadHome+spreadAway) > SpreadConsistencyTolerance {
		return fmt.Errorf("game line %s@%s: spread_home %.1f and spread_away %.1f disagree beyond %.1f: %w",
			g.AwayTeam, g.HomeTeam, g.SpreadHome, spreadAway, SpreadConsistencyTolerance, ErrInconsistentSpread)
	}
	return nil
}
