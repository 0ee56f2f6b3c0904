package setup

import (
	"fmt"
	"reflect"

	"github.com/andrescamacho/cozyhearth-go/internal/application/common"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	engine      *simulation.Engine
	store       simulation.SaveStore
	logger      shared.Logger
	middlewares []mediator.Middleware
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// Extra middlewares run inside the logging middleware, in the given order.
func NewHandlerRegistry(
	engine *simulation.Engine,
	store simulation.SaveStore,
	logger shared.Logger,
	middlewares ...mediator.Middleware,
) *HandlerRegistry {
	return &HandlerRegistry{
		engine:      engine,
		store:       store,
		logger:      shared.LoggerOrNoOp(logger),
		middlewares: middlewares,
	}
}

// RegisterSimulationHandlers registers the gameplay command and query handlers
//
// This method registers:
//   - StartCraftingCommand, BuyResourceCommand, SellResourceCommand
//   - SkipToHourCommand, SetTimeScaleCommand, SetPausedCommand, AdvanceTimeCommand
//   - QueueInteractionCommand
//   - GetTimeInfoQuery, GetResourcesQuery, GetCraftableRecipesQuery, GetActiveProcessesQuery
func (r *HandlerRegistry) RegisterSimulationHandlers(m mediator.Mediator) error {
	handlers := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&commands.StartCraftingCommand{}, commands.NewStartCraftingHandler(r.engine)},
		{&commands.BuyResourceCommand{}, commands.NewBuyResourceHandler(r.engine)},
		{&commands.SellResourceCommand{}, commands.NewSellResourceHandler(r.engine)},
		{&commands.SkipToHourCommand{}, commands.NewSkipToHourHandler(r.engine)},
		{&commands.SetTimeScaleCommand{}, commands.NewSetTimeScaleHandler(r.engine)},
		{&commands.SetPausedCommand{}, commands.NewSetPausedHandler(r.engine)},
		{&commands.AdvanceTimeCommand{}, commands.NewAdvanceTimeHandler(r.engine)},
		{&commands.QueueInteractionCommand{}, commands.NewQueueInteractionHandler(r.engine)},
		{&queries.GetTimeInfoQuery{}, queries.NewGetTimeInfoHandler(r.engine)},
		{&queries.GetResourcesQuery{}, queries.NewGetResourcesHandler(r.engine)},
		{&queries.GetCraftableRecipesQuery{}, queries.NewGetCraftableRecipesHandler(r.engine)},
		{&queries.GetActiveProcessesQuery{}, queries.NewGetActiveProcessesHandler(r.engine)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPersistenceHandlers registers the save and load handlers
//
// This method registers:
//   - SaveGameCommand, LoadGameCommand, NewGameCommand, ImportSaveCommand
//   - ExportSaveQuery
//   - DeleteSaveCommand and ListSavesQuery when a save store is available
func (r *HandlerRegistry) RegisterPersistenceHandlers(m mediator.Mediator) error {
	if err := m.Register(reflect.TypeOf(&commands.SaveGameCommand{}), commands.NewSaveGameHandler(r.engine)); err != nil {
		return err
	}
	if err := m.Register(reflect.TypeOf(&commands.LoadGameCommand{}), commands.NewLoadGameHandler(r.engine)); err != nil {
		return err
	}
	if err := m.Register(reflect.TypeOf(&commands.NewGameCommand{}), commands.NewNewGameHandler(r.engine)); err != nil {
		return err
	}
	if err := m.Register(reflect.TypeOf(&commands.ImportSaveCommand{}), commands.NewImportSaveHandler(r.engine)); err != nil {
		return err
	}
	if err := m.Register(reflect.TypeOf(&queries.ExportSaveQuery{}), queries.NewExportSaveHandler(r.engine)); err != nil {
		return err
	}

	// Slot management needs direct store access
	if r.store == nil {
		return nil
	}
	if err := m.Register(reflect.TypeOf(&commands.DeleteSaveCommand{}), commands.NewDeleteSaveHandler(r.store)); err != nil {
		return err
	}
	return m.Register(reflect.TypeOf(&queries.ListSavesQuery{}), queries.NewListSavesHandler(r.store))
}

// CreateConfiguredMediator creates a mediator with logging middleware, the
// registry's extra middlewares and every handler registered.
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	if r.engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := mediator.NewMediator()
	m.RegisterMiddleware(common.LoggingMiddleware(r.logger))
	for _, mw := range r.middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterSimulationHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterPersistenceHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
