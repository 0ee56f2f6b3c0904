package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/metrics"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/pidfile"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		tick     time.Duration
		duration time.Duration
		fast     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation for the selected slot",
		Long: `Load the selected slot and keep the simulation ticking.

The game autosaves every save.autosave_interval and once more on exit
(Ctrl+C or SIGTERM). Only one run per slot is allowed at a time.

With --fast the loop does not sleep: every tick advances --tick of
simulated real time, which makes --duration a fast-forward.

Examples:
  cozyhearth run
  cozyhearth run --tick 250ms --duration 1h
  cozyhearth run --fast --duration 24h --slot test_run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := openSession(ctx, sessionOptions{withMetrics: true})
			if err != nil {
				return err
			}
			defer s.Close()

			// Acquire PID file lock to prevent two runs of one slot
			pf := pidfile.ForSlot(s.cfg.Simulation.PIDDir, s.slot)
			if err := pf.Acquire(); err != nil {
				return fmt.Errorf("failed to acquire PID file lock: %w", err)
			}
			defer func() {
				if err := pf.Release(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to release PID file: %v\n", err)
				}
			}()

			if s.registry != nil {
				server := metrics.NewServer(s.cfg.Metrics, s.registry, s.logger)
				if err := server.Start(); err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					server.Shutdown(shutdownCtx)
				}()
			}

			unsubscribe := s.engine.Subscribe(eventLogger(s.logger))
			defer unsubscribe()

			if !cmd.Flags().Changed("tick") {
				tick = s.cfg.Simulation.TickInterval
			}
			if tick <= 0 {
				return fmt.Errorf("--tick must be positive")
			}

			loop := &runLoop{
				engine:   s.engine,
				mediator: s.mediator,
				logger:   s.logger,
				metrics:  s.simMetrics,
				tick:     tick,
				duration: duration,
				fast:     fast,
				autosave: s.cfg.Save.AutosaveInterval,
			}
			stats := loop.Run(ctx)

			info := s.engine.TimeInfo()
			fmt.Printf("Ran %d ticks (%s simulated), %d crafting process(es) completed\n",
				stats.Ticks, stats.Simulated.Round(time.Millisecond), stats.Completed)
			fmt.Printf("Stopped at %s, %s\n", info.DateString, info.TimeString)
			return nil
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", 100*time.Millisecond, "Real time between ticks (default: simulation.tick_interval)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after simulating this much real time (0 runs until interrupted)")
	cmd.Flags().BoolVar(&fast, "fast", false, "Tick without sleeping")

	return cmd
}

// eventLogger logs simulation notifications; ledger changes at debug level
func eventLogger(logger shared.Logger) events.Listener {
	return events.ListenerFunc(func(ev events.Event) {
		level := shared.LevelInfo
		if ev.Type == events.EventTypeResourceChanged {
			level = shared.LevelDebug
		}
		logger.Log(level, string(ev.Type), map[string]interface{}{
			"event_id": ev.ID,
			"data":     fmt.Sprintf("%+v", ev.Data),
		})
	})
}
