package sim

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/metrics"
	"github.com/yourusername/gridiron/internal/models"
)

// Market line-to-probability coefficients for the implied probability shown
// on game cards: P(home) = sigmoid(a + b*spread_home). Refit offline when
// the spread/probability relationship drifts.
const (
	marketProbA = 0.0
	marketProbB = -0.164
)

// Slate runs the full per-week batch: blend each game, simulate it, and
// emit predictions plus diagnostic game cards. Games are independent, so
// they are fanned out over a bounded worker pool; per-game seeds keep the
// parallel run bit-for-bit reproducible.
type Slate struct {
	blender *Blender
	engine  *Engine
	params  Params
	logger  *logrus.Logger
}

// NewSlate creates a slate runner
func NewSlate(blender *Blender, engine *Engine, params Params, logger *logrus.Logger) *Slate {
	if logger == nil {
		logger = logrus.New()
	}
	return &Slate{blender: blender, engine: engine, params: params, logger: logger}
}

// Run simulates every game in the slate. Output order matches input order
// regardless of worker scheduling.
func (s *Slate) Run(games []models.GameLine, injuries []models.InjuryRecord) ([]models.Prediction, []models.GameCard, error) {
	if len(games) == 0 {
		return nil, nil, models.ErrEmptySlate
	}

	start := time.Now()
	slateSeed := SlateSeed(games)
	s.logger.WithFields(logrus.Fields{
		"games":   len(games),
		"seed":    slateSeed,
		"samples": s.params.Samples,
	}).Info("Starting slate simulation")

	preds := make([]models.Prediction, len(games))
	cards := make([]models.GameCard, len(games))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.params.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				preds[i], cards[i] = s.runGame(&games[i], injuries, slateSeed)
			}
		}()
	}
	for i := range games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	metrics.SlatesSimulatedTotal.Inc()
	metrics.GamesSimulatedTotal.Add(float64(len(games)))
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	return preds, cards, nil
}

func (s *Slate) runGame(game *models.GameLine, injuries []models.InjuryRecord, slateSeed int64) (models.Prediction, models.GameCard) {
	if !game.SpreadKnown {
		metrics.MissingSpreadTotal.Inc()
	}
	if !game.HasTotal() {
		metrics.MissingTotalTotal.Inc()
	}

	blend := s.blender.Blend(game, injuries)
	outcome := s.engine.Simulate(blend.MuMargin, blend.MuTotal, game.SpreadHome, game.Total, GameSeed(slateSeed, game))

	pred := models.Prediction{
		HomeTeam:      game.HomeTeam,
		AwayTeam:      game.AwayTeam,
		VegasLine:     game.SpreadHome,
		VegasTotal:    game.Total,
		Sigma:         s.params.SigmaMargin,
		WinProbHome:   round4(outcome.WinProbHome),
		CoverProbHome: round4(outcome.CoverProbHome),
		OverProb:      round4(outcome.OverProb),
		Kickoff:       game.Kickoff,
		NeutralSite:   game.NeutralSite,
	}

	card := models.GameCard{
		GameID:            game.GameID(),
		HomeTeam:          game.HomeTeam,
		AwayTeam:          game.AwayTeam,
		Kickoff:           game.Kickoff,
		NeutralSite:       game.NeutralSite,
		RatingHome:        blend.RatingHome,
		RatingAway:        blend.RatingAway,
		HFAHome:           blend.HFAHome,
		InjAdjHome:        blend.InjAdjHome,
		InjAdjAway:        blend.InjAdjAway,
		VegasLine:         game.SpreadHome,
		VegasTotal:        game.Total,
		ModeledSpreadHome: blend.ModelSpreadHome,
		ModeledTotal:      blend.MuTotal,
		WinProbHome:       pred.WinProbHome,
		CoverProbHome:     pred.CoverProbHome,
		OverProb:          pred.OverProb,
		Notes:             s.notes(game),
	}
	return pred, card
}

// notes describes the blend assumptions plus the market-implied home win
// probability so a reviewer can audit each card without the config.
func (s *Slate) notes(game *models.GameLine) string {
	w := s.params.BlendWeightModel
	n := fmt.Sprintf("Blend %.0f%% model / %.0f%% market; sigma_margin=%.1f, sigma_total=%.1f",
		w*100, (1-w)*100, s.params.SigmaMargin, s.params.SigmaTotal)
	if game.SpreadKnown {
		implied := mathx.ProbFromHomeLine(game.SpreadHome, marketProbA, marketProbB)
		n += fmt.Sprintf("; market implied p_home=%.3f", implied)
	}
	return n
}

func round4(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*10000) / 10000
}
