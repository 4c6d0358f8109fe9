// Package sim implements the rating-to-outcome blending model and the Monte
// Carlo simulation layer that turns modeled distributions into win, cover,
// and over probabilities.
package sim

import (
	"math"

	"github.com/yourusername/gridiron/internal/injury"
	"github.com/yourusername/gridiron/internal/models"
	"github.com/yourusername/gridiron/internal/ratings"
)

// BlendResult carries the modeled distribution for one game plus the
// components that produced it, for the game card audit trail.
type BlendResult struct {
	RatingHome      float64
	RatingAway      float64
	HFAHome         float64
	InjAdjHome      float64
	InjAdjAway      float64
	ModelSpreadHome float64
	MuMargin        float64
	MuTotal         float64
}

// Blender combines ratings, home-field advantage, and injury adjustments
// with the market line into one modeled margin and total per game.
type Blender struct {
	store    *ratings.Store
	adjuster *injury.Adjuster
	params   Params
}

// NewBlender creates a blender over a ratings store and injury adjuster
func NewBlender(store *ratings.Store, adjuster *injury.Adjuster, params Params) *Blender {
	return &Blender{store: store, adjuster: adjuster, params: params}
}

// Blend produces the modeled margin and total for one game. HFA is zeroed on
// neutral sites. A missing market total falls back to a baseline derived
// from the modeled margin magnitude rather than failing.
func (b *Blender) Blend(game *models.GameLine, injuries []models.InjuryRecord) BlendResult {
	home := b.store.Get(game.HomeTeam)
	away := b.store.Get(game.AwayTeam)

	hfa := home.HFA
	if game.NeutralSite {
		hfa = 0.0
	}

	injHome := b.adjuster.AdjustPoints(game.HomeTeam, injuries)
	injAway := b.adjuster.AdjustPoints(game.AwayTeam, injuries)

	modelSpread := (home.Rating - away.Rating) + hfa + (injHome - injAway)

	w := b.params.BlendWeightModel
	muMargin := w*modelSpread + (1.0-w)*game.SpreadHome

	neutralTotal := b.params.BaselineTotal - b.params.TotalMarginSlope*math.Abs(modelSpread)
	var muTotal float64
	if game.HasTotal() {
		mw := b.params.MarketTotalBlend
		muTotal = mw*game.Total + (1.0-mw)*math.Max(b.params.MinBaselineTotal, neutralTotal)
	} else {
		muTotal = neutralTotal
	}

	return BlendResult{
		RatingHome:      home.Rating,
		RatingAway:      away.Rating,
		HFAHome:         hfa,
		InjAdjHome:      injHome,
		InjAdjAway:      injAway,
		ModelSpreadHome: modelSpread,
		MuMargin:        muMargin,
		MuTotal:         muTotal,
	}
}
