// Package mathx provides the shared numeric primitives of the forecasting
// engine: probability transforms, clipping, interpolation, and the normal CDF.
package mathx

import "math"

// ProbEpsilon is the default clip applied before logit/log so probabilities
// never reach 0 or 1 exactly.
const ProbEpsilon = 1e-6

// Clip bounds x to [lo, hi]
func Clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClipProb bounds a probability to [eps, 1-eps]
func ClipProb(p, eps float64) float64 {
	return Clip(p, eps, 1-eps)
}

// Logit returns ln(p/(1-p)) with p clipped away from {0, 1}
func Logit(p float64) float64 {
	p = ClipProb(p, ProbEpsilon)
	return math.Log(p / (1 - p))
}

// Sigmoid returns 1/(1+e^-z)
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// NormalCDF returns P(X <= x) for X ~ Normal(mu, sigma). Sigma is floored at
// a small positive value to keep degenerate inputs finite.
func NormalCDF(x, mu, sigma float64) float64 {
	if sigma < 1e-6 {
		sigma = 1e-6
	}
	z := (x - mu) / sigma
	return 0.5 * (1.0 + math.Erf(z/math.Sqrt2))
}

// Interp evaluates the piecewise-linear interpolant through (xs, ys) at x,
// clamping to the end values outside the grid. xs must be sorted ascending.
func Interp(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	// binary search for the bracketing segment
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := xs[hi] - xs[lo]
	if span <= 0 {
		return ys[lo]
	}
	t := (x - xs[lo]) / span
	return ys[lo] + t*(ys[hi]-ys[lo])
}

// ProbFromHomeLine converts a home line to a home win probability via
// sigmoid(a + b*line). The (a, b) pair comes from the market-conversion fit.
func ProbFromHomeLine(line, a, b float64) float64 {
	return Sigmoid(a + b*line)
}

// HomeLineFromProb inverts ProbFromHomeLine: (logit(p) - a) / b
func HomeLineFromProb(p, a, b float64) float64 {
	p = ClipProb(p, 1e-12)
	return (math.Log(p/(1-p)) - a) / b
}
