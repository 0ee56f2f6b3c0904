package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/logging"
	"github.com/andrescamacho/cozyhearth-go/internal/adapters/metrics"
	"github.com/andrescamacho/cozyhearth-go/internal/adapters/persistence"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/setup"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/interaction"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/database"
)

// session is one CLI invocation: configuration, save store, engine and the
// mediator that fronts it.
type session struct {
	cfg      *config.Config
	slot     string
	logger   *logging.CharmLogger
	store    simulation.SaveStore
	engine   *simulation.Engine
	mediator mediator.Mediator

	// Set when metrics are enabled
	registry   *prometheus.Registry
	simMetrics *metrics.SimulationMetricsCollector

	closers []func() error
}

type sessionOptions struct {
	// Skip restoring the slot's save
	fresh bool
	// Wire Prometheus collectors into the mediator and the event bus
	withMetrics bool
}

// openSession loads configuration, opens the configured save store and
// builds an engine for the selected slot.
func openSession(ctx context.Context, opts sessionOptions) (_ *session, err error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	sess := &session{cfg: cfg}
	defer func() {
		if err != nil {
			sess.Close()
		}
	}()

	sess.logger, err = logging.NewCharmLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	sess.closers = append(sess.closers, sess.logger.Close)

	sess.slot, err = resolveSlot(cfg)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := newSaveStore(cfg)
	if err != nil {
		return nil, err
	}
	sess.store = store
	sess.closers = append(sess.closers, closeStore)

	engineOpts, err := engineOptions(cfg, sess.slot)
	if err != nil {
		return nil, err
	}
	sess.engine, err = simulation.NewEngine(engineOpts, store, nil, sess.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	var middlewares []mediator.Middleware
	if opts.withMetrics && cfg.Metrics.Enabled {
		sess.registry = metrics.NewRegistry()
		commandMetrics := metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(sess.registry); err != nil {
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		sess.simMetrics = metrics.NewSimulationMetricsCollector()
		if err := sess.simMetrics.Register(sess.registry); err != nil {
			return nil, fmt.Errorf("failed to register simulation metrics: %w", err)
		}
		sess.engine.Subscribe(sess.simMetrics)
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandMetrics))
	}

	sess.mediator, err = setup.NewHandlerRegistry(sess.engine, store, sess.logger, middlewares...).CreateConfiguredMediator()
	if err != nil {
		return nil, fmt.Errorf("failed to create mediator: %w", err)
	}

	if opts.fresh {
		return sess, nil
	}

	loaded, err := send[*commands.LoadGameResponse](ctx, sess.mediator, &commands.LoadGameCommand{})
	if err != nil {
		return nil, err
	}
	if loaded.Reason != "" {
		fmt.Fprintf(os.Stderr, "Warning: save %q could not be read, starting a new game: %s\n", sess.slot, loaded.Reason)
	}
	return sess, nil
}

// Close releases the store and the log file
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	s.closers = nil
}

// save writes the engine through the mediator
func (s *session) save(ctx context.Context) (*commands.SaveGameResponse, error) {
	return send[*commands.SaveGameResponse](ctx, s.mediator, &commands.SaveGameCommand{})
}

// send dispatches a request and asserts the response type
func send[T mediator.Response](ctx context.Context, m mediator.Mediator, request mediator.Request) (T, error) {
	var zero T
	response, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	result, ok := response.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", response)
	}
	return result, nil
}

// resolveSlot picks the save slot
// Priority: --slot flag > user config default > save.slot
func resolveSlot(cfg *config.Config) (string, error) {
	if slotName != "" {
		if !config.IsValidSlot(slotName) {
			return "", fmt.Errorf("invalid slot name %q: use letters, digits, '_' or '-'", slotName)
		}
		return slotName, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err == nil {
		if userCfg, err := userConfigHandler.Load(); err == nil && userCfg.DefaultSlot != "" {
			return userCfg.DefaultSlot, nil
		}
	}

	if cfg.Save.Slot == "" {
		return "", fmt.Errorf("no save slot configured: use --slot or 'cozyhearth config set-slot'")
	}
	return cfg.Save.Slot, nil
}

// newSaveStore opens the configured save backend
func newSaveStore(cfg *config.Config) (simulation.SaveStore, func() error, error) {
	switch cfg.Save.Backend {
	case "file":
		store, err := persistence.NewFileSaveStore(cfg.Save.Directory)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open save directory: %w", err)
		}
		return store, func() error { return nil }, nil

	case "database", "":
		db, err := database.OpenSaveDatabase(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open save database: %w", err)
		}
		return persistence.NewGormSaveStore(db), func() error { return database.Close(db) }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported save backend: %s", cfg.Save.Backend)
	}
}

// engineOptions maps configuration onto engine options
func engineOptions(cfg *config.Config, slot string) (simulation.Options, error) {
	season, err := gametime.ParseSeason(cfg.Simulation.StartSeason)
	if err != nil {
		return simulation.Options{}, fmt.Errorf("invalid simulation.start_season: %w", err)
	}

	return simulation.Options{
		Slot:          slot,
		DaysPerSeason: cfg.Simulation.DaysPerSeason,
		StartHour:     cfg.Simulation.StartHour,
		StartDay:      cfg.Simulation.StartDay,
		StartSeason:   season,
		StartYear:     cfg.Simulation.StartYear,
		TimeScale:     cfg.Simulation.TimeScale,
		Interaction: interaction.Config{
			Dwell:        cfg.Interaction.Dwell,
			HistoryLimit: cfg.Interaction.HistoryLimit,
		},
		DialogueSeed: cfg.Simulation.DialogueSeed,
	}, nil
}
