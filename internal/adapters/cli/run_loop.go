package cli

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/metrics"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// runLoop drives an engine on a fixed tick and autosaves through the mediator
type runLoop struct {
	engine   *simulation.Engine
	mediator mediator.Mediator
	logger   shared.Logger
	metrics  *metrics.SimulationMetricsCollector

	tick     time.Duration
	duration time.Duration // simulated real time to run; 0 runs until cancelled
	fast     bool          // tick back to back with a fixed delta
	autosave time.Duration
}

// runStats summarizes a finished loop
type runStats struct {
	Ticks       int
	Simulated   time.Duration
	GameMinutes float64
	Completed   int
	Autosaves   int
}

// Run ticks until the context is cancelled or the duration has been
// simulated, then writes a final save. Save failures are logged and the loop
// keeps going.
func (l *runLoop) Run(ctx context.Context) runStats {
	var stats runStats
	autosave := rate.Sometimes{Interval: l.autosave}

	var ticker *time.Ticker
	if !l.fast {
		ticker = time.NewTicker(l.tick)
		defer ticker.Stop()
	}
	last := time.Now()

	l.logger.Log(shared.LevelInfo, "Simulation started", map[string]interface{}{
		"slot":     l.engine.Slot(),
		"tick":     l.tick.String(),
		"fast":     l.fast,
		"duration": l.duration.String(),
	})

loop:
	for l.duration <= 0 || stats.Simulated < l.duration {
		delta := l.tick
		if l.fast {
			if ctx.Err() != nil {
				break loop
			}
		} else {
			select {
			case <-ctx.Done():
				break loop
			case now := <-ticker.C:
				delta = now.Sub(last)
				last = now
			}
		}
		if l.duration > 0 {
			delta = min(delta, l.duration-stats.Simulated)
		}

		start := time.Now()
		result := l.engine.Tick(delta)
		if l.metrics != nil {
			l.metrics.RecordTick(time.Since(start), result.GameMinutes)
		}

		stats.Ticks++
		stats.Simulated += delta
		stats.GameMinutes += result.GameMinutes
		stats.Completed += result.Completed

		// First call saves immediately, giving a checkpoint at startup
		autosave.Do(func() {
			if l.save(ctx) {
				stats.Autosaves++
			}
		})
	}

	// The final save outlives the cancelled run context
	l.save(context.WithoutCancel(ctx))

	l.logger.Log(shared.LevelInfo, "Simulation stopped", map[string]interface{}{
		"slot":         l.engine.Slot(),
		"ticks":        stats.Ticks,
		"simulated":    stats.Simulated.String(),
		"game_minutes": stats.GameMinutes,
		"completed":    stats.Completed,
	})
	return stats
}

func (l *runLoop) save(ctx context.Context) bool {
	if _, err := l.mediator.Send(ctx, &commands.SaveGameCommand{}); err != nil {
		l.logger.Log(shared.LevelError, "Save failed", map[string]interface{}{
			"slot":  l.engine.Slot(),
			"error": err.Error(),
		})
		return false
	}
	return true
}
