// Package ratings holds the in-memory team strength table for one slate run.
package ratings

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/models"
)

// Store is a read-only table of team ratings keyed by canonical team code.
// It is built once per run and never mutated afterwards.
type Store struct {
	teams  map[string]models.TeamRating
	logger *logrus.Logger
}

// NewStore builds a store from validated ratings. A duplicate team code is
// rejected: the blender must see exactly one rating per team.
func NewStore(ratings []models.TeamRating, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}
	teams := make(map[string]models.TeamRating, len(ratings))
	for _, r := range ratings {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, exists := teams[r.TeamCode]; exists {
			return nil, fmt.Errorf("ratings store: %w: %s", models.ErrDuplicateTeam, r.TeamCode)
		}
		teams[r.TeamCode] = r
	}
	return &Store{teams: teams, logger: logger}, nil
}

// Len returns the number of rated teams
func (s *Store) Len() int {
	return len(s.teams)
}

// Has reports whether the team has a rating
func (s *Store) Has(teamCode string) bool {
	_, ok := s.teams[teamCode]
	return ok
}

// Get returns the team's rating. An unknown team yields a neutral zero
// rating with elevated uncertainty, logged so the gap shows up in audits
// rather than failing the slate.
func (s *Store) Get(teamCode string) models.TeamRating {
	if r, ok := s.teams[teamCode]; ok {
		return r
	}
	s.logger.WithField("team", teamCode).Warn("No rating for team, using neutral fallback")
	return models.TeamRating{TeamCode: teamCode, Rating: 0.0, Uncertainty: 1.0, HFA: 0.0}
}
