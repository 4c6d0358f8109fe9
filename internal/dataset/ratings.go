package dataset

import (
	"fmt"
	"math"

	"github.com/yourusername/gridiron/internal/models"
)

// LoadRatings reads the team ratings table. Required columns:
// team_code, rating, uncertainty, hfa. A duplicate team code is fatal
// (exactly one rating per team per run). A "power_rating" column is accepted
// in place of "rating" for older rating snapshots.
func LoadRatings(path string) ([]models.TeamRating, error) {
	t, err := readTable(path, "ratings")
	if err != nil {
		return nil, err
	}

	ratingCol := "rating"
	if !t.hasColumn(ratingCol) && t.hasColumn("power_rating") {
		ratingCol = "power_rating"
	}
	if err := t.requireColumns("team_code", ratingCol, "uncertainty", "hfa"); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(t.rows))
	ratings := make([]models.TeamRating, 0, len(t.rows))
	for i, row := range t.rows {
		tr := models.TeamRating{
			TeamCode:    NormalizeTeamCode(t.cell(row, "team_code")),
			Rating:      t.floatCell(row, ratingCol),
			Uncertainty: t.floatCell(row, "uncertainty"),
			HFA:         t.floatCell(row, "hfa"),
		}
		if math.IsNaN(tr.Rating) || math.IsNaN(tr.HFA) {
			return nil, fmt.Errorf("ratings row %d (%s): rating and hfa must be numeric", i+2, tr.TeamCode)
		}
		if math.IsNaN(tr.Uncertainty) {
			tr.Uncertainty = 0
		}
		if err := tr.Validate(); err != nil {
			return nil, fmt.Errorf("ratings row %d: %w", i+2, err)
		}
		if seen[tr.TeamCode] {
			return nil, fmt.Errorf("ratings: %w: %s", models.ErrDuplicateTeam, tr.TeamCode)
		}
		seen[tr.TeamCode] = true
		ratings = append(ratings, tr)
	}
	return ratings, nil
}
