// Package metrics provides the centralized Prometheus metrics registry for
// the forecasting engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SlatesSimulatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "slates_simulated_total",
		Help:      "Total number of slate simulation runs",
	})
	GamesSimulatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "games_simulated_total",
		Help:      "Total number of games simulated",
	})
	MissingSpreadTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "missing_spread_total",
		Help:      "Games simulated without a market spread (pick'em fallback)",
	})
	MissingTotalTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "missing_total_total",
		Help:      "Games simulated without a market total",
	})
	CalibrationGuardrailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "calibration_guardrail_total",
		Help:      "Calibration fits where the nearly-flat guardrail triggered",
	})
	CalibrationFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "calibration_fallback_total",
		Help:      "Calibration fits that selected the isotonic fallback",
	})
	CalibrationIdentityTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "calibration_identity_total",
		Help:      "Calibration fits that emitted the flagged identity model",
	})
)

// Gauge metrics
var (
	RatedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron",
		Name:      "rated_teams",
		Help:      "Number of teams in the ratings store for the current run",
	})
	SlateGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron",
		Name:      "slate_games",
		Help:      "Number of games in the current slate",
	})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of slate simulation runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SlatesSimulatedTotal)
		registry.MustRegister(GamesSimulatedTotal)
		registry.MustRegister(MissingSpreadTotal)
		registry.MustRegister(MissingTotalTotal)
		registry.MustRegister(CalibrationGuardrailTotal)
		registry.MustRegister(CalibrationFallbackTotal)
		registry.MustRegister(CalibrationIdentityTotal)

		registry.MustRegister(RatedTeams)
		registry.MustRegister(SlateGames)

		registry.MustRegister(SimulationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}
