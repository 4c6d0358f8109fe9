// Package service orchestrates the per-week slate run: input validation,
// blending, simulation, calibration, and output writing.
package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/models"
	"github.com/yourusername/gridiron/internal/ratings"
)

// leagueTeamCount is the expected number of rated teams; other counts are a
// warning, not an error, so partial-league snapshots still run.
const leagueTeamCount = 32

// SlateValidator validates the cross-table consistency of one slate's inputs
type SlateValidator struct {
	logger *logrus.Logger
}

// NewSlateValidator creates a new slate validator
func NewSlateValidator(logger *logrus.Logger) *SlateValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &SlateValidator{logger: logger}
}

// ValidateSlate checks the games against the ratings store. Duplicate games
// are fatal; unrated teams and odd team counts are surfaced as warnings so
// the gap is visible in logs without refusing to forecast.
func (v *SlateValidator) ValidateSlate(games []models.GameLine, store *ratings.Store) error {
	if len(games) == 0 {
		return models.ErrEmptySlate
	}

	if store.Len() != leagueTeamCount {
		v.logger.WithField("teams", store.Len()).Warn("Ratings table does not cover the full league")
	}

	seen := make(map[string]bool, len(games))
	for i := range games {
		g := &games[i]
		key := g.AwayTeam + "@" + g.HomeTeam
		if seen[key] {
			return fmt.Errorf("game lines: duplicate game %s", key)
		}
		seen[key] = true

		for _, team := range []string{g.HomeTeam, g.AwayTeam} {
			if !store.Has(team) {
				v.logger.WithFields(logrus.Fields{
					"team": team,
					"game": key,
				}).Warn("Team on slate has no rating, neutral fallback will be used")
			}
		}

		if !g.Kickoff.IsZero() {
			if age := time.Since(g.Kickoff); age > 14*24*time.Hour {
				v.logger.WithFields(logrus.Fields{
					"game":    key,
					"kickoff": g.Kickoff,
				}).Warn("Kickoff is more than two weeks in the past, slate may be stale")
			}
		}
	}
	return nil
}
