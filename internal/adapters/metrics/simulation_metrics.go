package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetricsCollector handles turn engine and AI pipeline metrics.
// It implements orchestration.Metrics.
type SimulationMetricsCollector struct {
	aiDecisionsTotal *prometheus.CounterVec
	turnsResolved    *prometheus.CounterVec
	eliminations     *prometheus.CounterVec
	currentTurn      *prometheus.GaugeVec
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		aiDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ai_decisions_total",
				Help:      "Computer player decision rounds by game and outcome",
			},
			[]string{"game_id", "outcome"},
		),

		turnsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "turns_resolved_total",
				Help:      "Total number of resolved turns by game",
			},
			[]string{"game_id"},
		),

		eliminations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_eliminations_total",
				Help:      "Total number of player eliminations by game",
			},
			[]string{"game_id"},
		),

		currentTurn: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "current_turn",
				Help:      "Current turn number by game",
			},
			[]string{"game_id"},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.aiDecisionsTotal,
		c.turnsResolved,
		c.eliminations,
		c.currentTurn,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// ObserveAIDecision records the outcome of one computer player decision round
func (c *SimulationMetricsCollector) ObserveAIDecision(gameID int, skipped, failed bool) {
	outcome := "completed"
	switch {
	case failed:
		outcome = "failed"
	case skipped:
		outcome = "skipped"
	}
	c.aiDecisionsTotal.WithLabelValues(strconv.Itoa(gameID), outcome).Inc()
}

// ObserveTurnResolved records one resolved turn and its eliminations
func (c *SimulationMetricsCollector) ObserveTurnResolved(gameID, turn int, eliminated int) {
	label := strconv.Itoa(gameID)
	c.turnsResolved.WithLabelValues(label).Inc()
	c.currentTurn.WithLabelValues(label).Set(float64(turn))
	if eliminated > 0 {
		c.eliminations.WithLabelValues(label).Add(float64(eliminated))
	}
}
