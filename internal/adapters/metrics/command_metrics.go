package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
)

// Request outcomes
const (
	OutcomeSuccess          = "success"
	OutcomeRejected         = "rejected"
	OutcomePersistenceError = "persistence_error"
)

// CommandMetricsCollector times the commands and queries sent through the mediator
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	labels := []string{"request", "kind", "outcome"}
	return &CommandMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling mediator commands and queries",
				// Most requests touch only memory; saves hit the store
				Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.25, 1.0},
			},
			labels,
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Mediator commands and queries handled, by outcome",
			},
			labels,
		),
	}
}

// Register registers all command metrics with the registerer
func (c *CommandMetricsCollector) Register(registerer prometheus.Registerer) error {
	return registerAll(registerer, c.requestDuration, c.requestsTotal)
}

// RecordCommandExecution records one handled request
func (c *CommandMetricsCollector) RecordCommandExecution(requestName string, duration float64, err error) {
	kind := requestKind(requestName)
	outcome := Outcome(err)
	c.requestDuration.WithLabelValues(requestName, kind, outcome).Observe(duration)
	c.requestsTotal.WithLabelValues(requestName, kind, outcome).Inc()
}

// Outcome classifies a handler result. Save store failures are the only
// errors not caused by the player's request.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, simulation.ErrPersistenceRead), errors.Is(err, simulation.ErrPersistenceWrite):
		return OutcomePersistenceError
	default:
		return OutcomeRejected
	}
}

func requestKind(name string) string {
	if strings.HasSuffix(name, "Query") {
		return "query"
	}
	return "command"
}
