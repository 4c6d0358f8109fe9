package models

import (
	"math"
	"time"
)

// Prediction is the strict per-game output row of one Monte Carlo run.
// Rows are produced once per game per slate and never mutated.
type Prediction struct {
	HomeTeam      string    `db:"home_team" json:"home_team"`
	AwayTeam      string    `db:"away_team" json:"away_team"`
	VegasLine     float64   `db:"vegas_line" json:"vegas_line"`
	VegasTotal    float64   `db:"vegas_total" json:"vegas_total"`
	Sigma         float64   `db:"sigma" json:"sigma"`
	WinProbHome   float64   `db:"win_prob_home" json:"win_prob_home"`
	CoverProbHome float64   `db:"cover_prob_home" json:"cover_prob_home"`
	OverProb      float64   `db:"ou_prob_over" json:"ou_prob_over"`
	Kickoff       time.Time `db:"kickoff_utc" json:"kickoff_utc"`
	NeutralSite   bool      `db:"neutral_site" json:"neutral_site"`

	// WinProbHomeCal is populated only after a calibration artifact is applied.
	WinProbHomeCal float64 `db:"win_prob_home_cal" json:"win_prob_home_cal,omitempty"`
	Calibrated     bool    `db:"-" json:"-"`
}

// HasOverProb reports whether an over/under probability exists (i.e. the
// market posted a total).
func (p *Prediction) HasOverProb() bool {
	return !math.IsNaN(p.OverProb)
}

// GameCard carries the extended per-game diagnostics behind a Prediction
type GameCard struct {
	GameID            string    `db:"game_id" json:"game_id"`
	HomeTeam          string    `db:"home_team" json:"home_team"`
	AwayTeam          string    `db:"away_team" json:"away_team"`
	Kickoff           time.Time `db:"kickoff_utc" json:"kickoff_utc"`
	NeutralSite       bool      `db:"neutral_site" json:"neutral_site"`
	RatingHome        float64   `db:"rating_home" json:"rating_home"`
	RatingAway        float64   `db:"rating_away" json:"rating_away"`
	HFAHome           float64   `db:"hfa_home" json:"hfa_home"`
	InjAdjHome        float64   `db:"inj_adj_home" json:"inj_adj_home"`
	InjAdjAway        float64   `db:"inj_adj_away" json:"inj_adj_away"`
	VegasLine         float64   `db:"vegas_line" json:"vegas_line"`
	VegasTotal        float64   `db:"vegas_total" json:"vegas_total"`
	ModeledSpreadHome float64   `db:"modeled_spread_home" json:"modeled_spread_home"`
	ModeledTotal      float64   `db:"modeled_total" json:"modeled_total"`
	WinProbHome       float64   `db:"win_prob_home" json:"win_prob_home"`
	CoverProbHome     float64   `db:"cover_prob_home" json:"cover_prob_home"`
	OverProb          float64   `db:"ou_prob_over" json:"ou_prob_over"`
	Notes             string    `db:"notes" json:"notes"`
}
