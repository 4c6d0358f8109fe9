package dataset

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/models"
)

// LoadGameLines reads the market lines table. Required columns: home_team,
// away_team, total, kickoff_utc, neutral_site, and at least one of
// spread_home / spread_away. A missing home spread is derived from the away
// spread; when both are present they must agree within the 0.5 tolerance.
// A game with no spread at all defaults to 0.0 (pick'em) with a warning.
func LoadGameLines(path string, logger *logrus.Logger) ([]models.GameLine, error) {
	t, err := readTable(path, "game_lines")
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("home_team", "away_team", "total", "kickoff_utc", "neutral_site"); err != nil {
		return nil, err
	}
	if !t.hasColumn("spread_home") && !t.hasColumn("spread_away") {
		return nil, fmt.Errorf("game_lines: %w: spread_home or spread_away", models.ErrMissingColumn)
	}

	lines := make([]models.GameLine, 0, len(t.rows))
	for i, row := range t.rows {
		g := models.GameLine{
			HomeTeam:    NormalizeTeamCode(t.cell(row, "home_team")),
			AwayTeam:    NormalizeTeamCode(t.cell(row, "away_team")),
			Total:       t.lineCell(row, "total"),
			Kickoff:     t.timeCell(row, "kickoff_utc"),
			NeutralSite: t.boolCell(row, "neutral_site"),
		}

		spreadHome := t.lineCell(row, "spread_home")
		spreadAway := t.lineCell(row, "spread_away")
		switch {
		case !math.IsNaN(spreadHome):
			g.SpreadHome = spreadHome
			g.SpreadKnown = true
		case !math.IsNaN(spreadAway):
			g.SpreadHome = -spreadAway
			g.SpreadKnown = true
		default:
			// pick'em fallback is conservative, not authoritative
			g.SpreadHome = 0.0
			logger.WithFields(logrus.Fields{
				"home_team": g.HomeTeam,
				"away_team": g.AwayTeam,
			}).Warn("No market spread for game, defaulting to pick'em")
		}

		if err := g.Validate(spreadAway); err != nil {
			return nil, fmt.Errorf("game_lines row %d: %w", i+2, err)
		}
		lines = append(lines, g)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("game_lines: %w", models.ErrEmptySlate)
	}
	return lines, nil
}
