package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
)

// SimulationMetricsCollector turns simulation notifications into metrics.
// Subscribe it to the engine's bus; it never calls back into the engine.
type SimulationMetricsCollector struct {
	resourceAmount  *prometheus.GaugeVec
	resourceChanges *prometheus.CounterVec
	limitReached    *prometheus.CounterVec

	craftingStarted   *prometheus.CounterVec
	craftingCompleted *prometheus.CounterVec
	craftingFailed    *prometheus.CounterVec

	hour          prometheus.Gauge
	day           prometheus.Gauge
	year          prometheus.Gauge
	seasonChanges *prometheus.CounterVec

	interactions *prometheus.CounterVec
	dialogue     *prometheus.CounterVec

	tickDuration prometheus.Histogram
	gameMinutes  prometheus.Counter
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		resourceAmount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_amount",
				Help:      "Current ledger amount by category and type",
			},
			[]string{"category", "type"},
		),
		resourceChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_changes_total",
				Help:      "Ledger mutations by category, type and direction",
			},
			[]string{"category", "type", "direction"},
		),
		limitReached: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_limit_reached_total",
				Help:      "Additions clamped to the resource limit",
			},
			[]string{"category", "type"},
		),
		craftingStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "crafting_started_total",
				Help:      "Crafting processes started by recipe",
			},
			[]string{"recipe"},
		),
		craftingCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "crafting_completed_units_total",
				Help:      "Crafted batches completed by recipe",
			},
			[]string{"recipe"},
		),
		craftingFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "crafting_failed_total",
				Help:      "Rejected crafting requests by reason",
			},
			[]string{"reason"},
		),
		hour: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "clock_hour",
			Help:      "Current in-game hour",
		}),
		day: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "clock_day",
			Help:      "Current in-game day of the season",
		}),
		year: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "clock_year",
			Help:      "Current in-game year",
		}),
		seasonChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "season_changes_total",
				Help:      "Season transitions by the season entered",
			},
			[]string{"season"},
		),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "interactions_total",
				Help:      "Interactions by kind, type and phase",
			},
			[]string{"kind", "interaction", "phase"},
		),
		dialogue: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dialogue_lines_total",
				Help:      "Dialogue lines spoken by NPC",
			},
			[]string{"npc"},
		),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent processing one simulation tick",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		gameMinutes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "game_minutes_total",
			Help:      "In-game minutes advanced by the clock",
		}),
	}
}

// Register registers all simulation metrics with the registerer
func (c *SimulationMetricsCollector) Register(registerer prometheus.Registerer) error {
	return registerAll(registerer,
		c.resourceAmount, c.resourceChanges, c.limitReached,
		c.craftingStarted, c.craftingCompleted, c.craftingFailed,
		c.hour, c.day, c.year, c.seasonChanges,
		c.interactions, c.dialogue,
		c.tickDuration, c.gameMinutes,
	)
}

// OnEvent implements events.Listener
func (c *SimulationMetricsCollector) OnEvent(ev events.Event) {
	switch data := ev.Data.(type) {
	case events.ResourceChangedData:
		c.resourceAmount.WithLabelValues(data.Category, data.Type).Set(data.NewAmount)
		direction := "gain"
		if data.Change < 0 {
			direction = "spend"
		}
		c.resourceChanges.WithLabelValues(data.Category, data.Type, direction).Inc()
	case events.ResourceLimitReachedData:
		c.limitReached.WithLabelValues(data.Category, data.Type).Inc()
	case events.CraftingStartedData:
		c.craftingStarted.WithLabelValues(data.Recipe).Inc()
	case events.CraftingCompletedData:
		c.craftingCompleted.WithLabelValues(data.Recipe).Add(float64(data.Quantity))
	case events.CraftingFailedData:
		c.craftingFailed.WithLabelValues(data.Reason).Inc()
	case events.HourChangedData:
		c.hour.Set(float64(data.Hour))
	case events.DayChangedData:
		c.day.Set(float64(data.Day))
		c.year.Set(float64(data.Year))
	case events.SeasonChangedData:
		c.seasonChanges.WithLabelValues(data.Season).Inc()
		c.year.Set(float64(data.Year))
	case events.InteractionData:
		phase := "started"
		if ev.Type == events.EventTypeInteractionEnded {
			phase = "ended"
		}
		c.interactions.WithLabelValues(data.Kind, data.InteractionType, phase).Inc()
	case events.DialogueData:
		c.dialogue.WithLabelValues(data.NPCID).Inc()
	}
}

// RecordTick records the wall time of one tick and the game minutes it advanced
func (c *SimulationMetricsCollector) RecordTick(duration time.Duration, gameMinutes float64) {
	c.tickDuration.Observe(duration.Seconds())
	if gameMinutes > 0 {
		c.gameMinutes.Add(gameMinutes)
	}
}
