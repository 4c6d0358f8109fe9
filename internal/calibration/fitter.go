package calibration

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/metrics"
)

// Sample is one historical (probability, realized outcome) pair
type Sample struct {
	Prob    float64
	Outcome int
}

// FitterConfig holds the guardrail thresholds. These cutoffs are empirical;
// they are configuration, not constants buried in the fit.
type FitterConfig struct {
	// FlatSlopeThreshold: a Platt fit with |A| below this is nearly flat.
	FlatSlopeThreshold float64
	// FlatRangeThreshold: a calibrated output range below this is nearly flat.
	FlatRangeThreshold float64
	// MinSampleSize: below this the fit proceeds but is flagged unstable.
	MinSampleSize int
	// Epsilon clips probabilities away from {0, 1}.
	Epsilon float64
}

// DefaultFitterConfig returns the production guardrail settings
func DefaultFitterConfig() FitterConfig {
	return FitterConfig{
		FlatSlopeThreshold: 0.1,
		FlatRangeThreshold: 0.05,
		MinSampleSize:      200,
		Epsilon:            mathx.ProbEpsilon,
	}
}

// Meta records how a calibration model was selected, persisted next to the
// artifact for audit.
type Meta struct {
	RunID              uuid.UUID        `json:"run_id"`
	SelectedBy         string           `json:"selected_by"`
	Method             Method           `json:"method"`
	SampleSize         int              `json:"sample_size"`
	Unstable           bool             `json:"unstable"`
	GuardrailTriggered bool             `json:"guardrail_triggered"`
	IdentityFallback   bool             `json:"identity_fallback"`
	RawScore           Score            `json:"raw_score"`
	CandidateScores    map[string]Score `json:"candidate_scores"`
	FittedAt           time.Time        `json:"fitted_at"`
}

// Fitter fits a calibration model from historical samples with guardrails
// preventing a degenerate fit from silently shipping.
type Fitter struct {
	cfg    FitterConfig
	logger *logrus.Logger
}

// NewFitter creates a fitter
func NewFitter(cfg FitterConfig, logger *logrus.Logger) *Fitter {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = mathx.ProbEpsilon
	}
	return &Fitter{cfg: cfg, logger: logger}
}

// Fit runs the guarded selection: Platt on logit(p) first; if the fit is
// nearly flat, isotonic regression is attempted and the candidates compete
// on log loss, then Brier, with ties going to isotonic. If every candidate
// is degenerate the fitter returns an explicitly-flagged identity model
// rather than failing, so downstream consumers always get a valid artifact.
func (f *Fitter) Fit(samples []Sample) (Model, Meta, error) {
	if len(samples) == 0 {
		return Model{}, Meta{}, fmt.Errorf("calibration fit: no labeled samples")
	}

	meta := Meta{
		RunID:           uuid.New(),
		SelectedBy:      "guarded_logloss_then_brier",
		SampleSize:      len(samples),
		CandidateScores: make(map[string]Score),
		FittedAt:        time.Now().UTC(),
	}
	if len(samples) < f.cfg.MinSampleSize {
		meta.Unstable = true
		f.logger.WithField("samples", len(samples)).Warn("Calibration sample is small, fit may be unstable")
	}

	probs := make([]float64, len(samples))
	outcomes := make([]int, len(samples))
	zs := make([]float64, len(samples))
	for i, s := range samples {
		probs[i] = mathx.ClipProb(s.Prob, f.cfg.Epsilon)
		outcomes[i] = s.Outcome
		zs[i] = mathx.Logit(probs[i])
	}
	meta.RawScore = scoreOf(outcomes, probs)

	a, b := fitLogistic(zs, outcomes)
	plattPreds := make([]float64, len(zs))
	lo, hi := 1.0, 0.0
	for i, z := range zs {
		p := mathx.ClipProb(mathx.Sigmoid(a*z+b), f.cfg.Epsilon)
		plattPreds[i] = p
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	plattScore := scoreOf(outcomes, plattPreds)
	meta.CandidateScores["platt"] = plattScore

	platt := Model{Method: MethodPlatt, Platt: Platt{A: a, B: b, Feature: FeatureLogit}}
	calRange := hi - lo
	nearlyFlat := math.Abs(a) < f.cfg.FlatSlopeThreshold || calRange < f.cfg.FlatRangeThreshold
	if !nearlyFlat {
		meta.Method = MethodPlatt
		return platt, meta, nil
	}

	meta.GuardrailTriggered = true
	metrics.CalibrationGuardrailTotal.Inc()
	f.logger.WithFields(logrus.Fields{
		"A":         a,
		"cal_range": calRange,
	}).Warn("Platt fit is nearly flat, trying isotonic fallback")

	iso, isoPreds, ok := fitIsotonic(probs, outcomes)
	if !ok || isotonicRange(iso) < f.cfg.FlatRangeThreshold {
		// both candidates are degenerate: ship an identity model, loudly
		meta.Method = MethodPlatt
		meta.IdentityFallback = true
		metrics.CalibrationIdentityTotal.Inc()
		f.logger.Warn("Isotonic fallback is also degenerate, emitting flagged identity calibration")
		return Identity(), meta, nil
	}
	isoScore := scoreOf(outcomes, isoPreds)
	meta.CandidateScores["isotonic"] = isoScore

	const tol = 1e-6
	preferIso := isoScore.LogLoss < plattScore.LogLoss-tol ||
		(math.Abs(isoScore.LogLoss-plattScore.LogLoss) < tol && isoScore.Brier <= plattScore.Brier)
	if preferIso {
		meta.Method = MethodIsotonic
		metrics.CalibrationFallbackTotal.Inc()
		f.logger.WithFields(logrus.Fields{
			"platt_logloss":    plattScore.LogLoss,
			"isotonic_logloss": isoScore.LogLoss,
		}).Info("Selected isotonic calibration")
		return iso, meta, nil
	}
	meta.Method = MethodPlatt
	f.logger.Info("Keeping Platt calibration, wins on metrics")
	return platt, meta, nil
}

// fitLogistic fits outcome ~ sigmoid(a*z + b) by Newton iteration on the
// two-parameter log-likelihood, with a tiny ridge to keep the Hessian
// invertible on near-separable data.
func fitLogistic(zs []float64, outcomes []int) (float64, float64) {
	const (
		maxIter = 25
		ridge   = 1e-6
		tol     = 1e-10
	)
	a, b := 1.0, 0.0
	for iter := 0; iter < maxIter; iter++ {
		var gA, gB, hAA, hAB, hBB float64
		for i, z := range zs {
			p := mathx.Sigmoid(a*z + b)
			r := p - float64(outcomes[i])
			w := p * (1 - p)
			gA += r * z
			gB += r
			hAA += w * z * z
			hAB += w * z
			hBB += w
		}
		gA += ridge * a
		gB += ridge * b
		hAA += ridge
		hBB += ridge

		det := hAA*hBB - hAB*hAB
		if det <= 0 {
			break
		}
		dA := (hBB*gA - hAB*gB) / det
		dB := (hAA*gB - hAB*gA) / det
		a -= dA
		b -= dB
		if math.Abs(dA) < tol && math.Abs(dB) < tol {
			break
		}
	}
	return a, b
}

// fitIsotonic runs pool-adjacent-violators on (prob, outcome) and returns
// the fitted model, per-sample predictions, and whether a usable threshold
// grid exists (at least two distinct x values).
func fitIsotonic(probs []float64, outcomes []int) (Model, []float64, bool) {
	n := len(probs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return probs[order[i]] < probs[order[j]] })

	type block struct {
		minX, maxX float64
		sumY, w    float64
	}
	var blocks []block
	for _, idx := range order {
		x, y := probs[idx], float64(outcomes[idx])
		if len(blocks) > 0 && blocks[len(blocks)-1].maxX == x {
			// identical x values share a block
			last := &blocks[len(blocks)-1]
			last.sumY += y
			last.w++
		} else {
			blocks = append(blocks, block{minX: x, maxX: x, sumY: y, w: 1})
		}
		for len(blocks) > 1 {
			a, b := blocks[len(blocks)-2], blocks[len(blocks)-1]
			if a.sumY/a.w <= b.sumY/b.w {
				break
			}
			blocks = blocks[:len(blocks)-1]
			blocks[len(blocks)-1] = block{minX: a.minX, maxX: b.maxX, sumY: a.sumY + b.sumY, w: a.w + b.w}
		}
	}

	var xs, ys []float64
	for _, bl := range blocks {
		mean := mathx.Clip(bl.sumY/bl.w, 0, 1)
		xs = append(xs, bl.minX)
		ys = append(ys, mean)
		if bl.maxX > bl.minX {
			xs = append(xs, bl.maxX)
			ys = append(ys, mean)
		}
	}
	if len(xs) < 2 {
		return Model{}, nil, false
	}

	model := Model{Method: MethodIsotonic, Isotonic: Isotonic{X: xs, Y: ys}}
	preds := make([]float64, n)
	for i, p := range probs {
		preds[i] = mathx.Interp(p, xs, ys)
	}
	return model, preds, true
}

func isotonicRange(m Model) float64 {
	ys := m.Isotonic.Y
	if len(ys) == 0 {
		return 0
	}
	return ys[len(ys)-1] - ys[0]
}
