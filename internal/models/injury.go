package models

import (
	"fmt"
	"strings"
)

// InjuryStatus classifies a player's availability for the upcoming game
type InjuryStatus string

// Enumerated injury statuses. StatusSuspended and StatusInjuredReserve are
// accepted from upstream reports and carry OUT-like severity.
const (
	StatusOut            InjuryStatus = "OUT"
	StatusDoubtful       InjuryStatus = "DOUBTFUL"
	StatusQuestionable   InjuryStatus = "QUESTIONABLE"
	StatusProbable       InjuryStatus = "PROBABLE"
	StatusActive         InjuryStatus = "ACTIVE"
	StatusSuspended      InjuryStatus = "SUSPENDED"
	StatusInjuredReserve InjuryStatus = "IR"
)

// ParseInjuryStatus normalizes free-form status strings from injury reports.
// It is tolerant of common report wordings ("Injured Reserve", "Q", "Susp")
// but rejects strings it cannot classify.
func ParseInjuryStatus(s string) (InjuryStatus, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case v == "ACTIVE" || v == "HEALTHY" || v == "":
		return StatusActive, nil
	case v == "IR" || strings.Contains(v, "INJURED RESERVE"):
		return StatusInjuredReserve, nil
	case strings.Contains(v, "SUSP"):
		return StatusSuspended, nil
	case strings.Contains(v, "OUT"):
		return StatusOut, nil
	case strings.Contains(v, "DOUBT"):
		return StatusDoubtful, nil
	case v == "Q" || strings.Contains(v, "QUESTION"):
		return StatusQuestionable, nil
	case strings.Contains(v, "PROB"):
		return StatusProbable, nil
	}
	return "", fmt.Errorf("injury status %q: %w", s, ErrUnknownInjuryStatus)
}

// SeverityWeight maps a status to the per-player margin weight used by the
// injury adjuster. More negative means a bigger expected points loss.
func (s InjuryStatus) SeverityWeight() float64 {
	switch s {
	case StatusInjuredReserve:
		return -0.70
	case StatusOut, StatusSuspended:
		return -0.60
	case StatusDoubtful:
		return -0.45
	case StatusQuestionable:
		return -0.25
	case StatusProbable:
		return -0.10
	default:
		return 0.0
	}
}

// InjuryRecord represents one player's entry on a weekly injury report
type InjuryRecord struct {
	TeamCode   string       `db:"team_code" json:"team_code" validate:"required"`
	PlayerName string       `db:"player_name" json:"player_name" validate:"required"`
	Status     InjuryStatus `db:"status" json:"status"`
}

// DepthEntry represents a player's contribution weight on the depth chart
type DepthEntry struct {
	TeamCode   string  `db:"team_code" json:"team_code" validate:"required"`
	Position   string  `db:"position" json:"position"`
	PlayerName string  `db:"player_name" json:"player_name" validate:"required"`
	Value      float64 `db:"value" json:"value" validate:"gte=0"`
}
