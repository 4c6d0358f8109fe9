package models

import "fmt"

// Rating bounds enforced at load time. Ratings come from the offline
// power-rating update and are read-only inside the engine.
const (
	MinRating = -30.0
	MaxRating = 30.0
	MinHFA    = -3.0
	MaxHFA    = 3.0
)

// TeamRating represents one team's strength rating for the current week
type TeamRating struct {
	TeamCode    string  `db:"team_code" json:"team_code" validate:"required"`
	Rating      float64 `db:"rating" json:"rating"`
	Uncertainty float64 `db:"uncertainty" json:"uncertainty" validate:"gte=0"`
	HFA         float64 `db:"hfa" json:"hfa"`
}

// Validate checks rating and home-field advantage bounds
func (r *TeamRating) Validate() error {
	if r.TeamCode == "" {
		return fmt.Errorf("team rating: %w", ErrTeamCodeRequired)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("team rating %s: rating %.2f outside [%.0f, %.0f]", r.TeamCode, r.Rating, MinRating, MaxRating)
	}
	if r.HFA < MinHFA || r.HFA > MaxHFA {
		return fmt.Errorf("team rating %s: hfa %.2f outside [%.0f, %.0f]", r.TeamCode, r.HFA, MinHFA, MaxHFA)
	}
	return nil
}
