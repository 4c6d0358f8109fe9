// Package injury converts weekly injury reports into bounded point-margin
// adjustments, scaled by the injured player's depth-chart value.
package injury

import (
	"math"
	"strings"

	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/models"
)

// Adjustment bounds and the soft value-scaling factor. The clip keeps any
// single team's injury report inside an auditable range.
const (
	AdjustmentFloor = -2.5
	AdjustmentCeil  = 0.75
	ValueScale      = 2.2
	defaultAvgValue = 5.0
)

type teamDepth struct {
	valueByPlayer map[string]float64
	avgValue      float64
}

// Adjuster computes per-team injury adjustments from a depth chart index
type Adjuster struct {
	depth map[string]teamDepth
}

// NewAdjuster indexes the depth chart by team and casefolded player name
func NewAdjuster(entries []models.DepthEntry) *Adjuster {
	byTeam := make(map[string][]models.DepthEntry)
	for _, e := range entries {
		byTeam[e.TeamCode] = append(byTeam[e.TeamCode], e)
	}

	depth := make(map[string]teamDepth, len(byTeam))
	for team, list := range byTeam {
		td := teamDepth{valueByPlayer: make(map[string]float64, len(list))}
		sum := 0.0
		for _, e := range list {
			td.valueByPlayer[normalizeName(e.PlayerName)] = e.Value
			sum += e.Value
		}
		td.avgValue = math.Max(1.0, sum/float64(len(list)))
		depth[team] = td
	}
	return &Adjuster{depth: depth}
}

// AdjustPoints returns the bounded margin adjustment for one team given the
// full injury report. Players that cannot be matched to a depth-chart entry
// contribute zero; an injury report never fails a run.
func (a *Adjuster) AdjustPoints(teamCode string, injuries []models.InjuryRecord) float64 {
	td, ok := a.depth[teamCode]
	if !ok {
		td = teamDepth{avgValue: defaultAvgValue}
	}

	pts := 0.0
	for _, inj := range injuries {
		if inj.TeamCode != teamCode {
			continue
		}
		weight := inj.Status.SeverityWeight()
		if weight == 0 {
			continue
		}
		value := td.valueByPlayer[normalizeName(inj.PlayerName)]
		// diminishing returns: a star hurts more, but not linearly
		pts += weight * math.Log1p(value/td.avgValue) * ValueScale
	}
	return mathx.Clip(pts, AdjustmentFloor, AdjustmentCeil)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
