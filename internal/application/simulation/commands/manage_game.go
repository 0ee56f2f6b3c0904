package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/application/common"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// SaveGameCommand writes the current game to the engine's slot
type SaveGameCommand struct{}

// SaveGameResponse reports where and when the game was saved
type SaveGameResponse struct {
	Slot    string
	SavedAt time.Time
}

// LoadGameCommand replaces the current game with the slot's save
type LoadGameCommand struct{}

// LoadGameResponse reports whether a save was restored. Reason explains
// why an existing save could not be read.
type LoadGameResponse struct {
	Slot   string
	Loaded bool
	Reason string
	Info   gametime.TimeInfo
}

// NewGameCommand discards the current game and starts over
type NewGameCommand struct{}

// NewGameResponse carries the clock of the fresh game
type NewGameResponse struct {
	Info gametime.TimeInfo
}

// ImportSaveCommand restores and stores an exported save blob
type ImportSaveCommand struct {
	Data []byte
}

// ImportSaveResponse carries the clock of the imported game
type ImportSaveResponse struct {
	Info gametime.TimeInfo
}

// DeleteSaveCommand removes a save slot
type DeleteSaveCommand struct {
	Slot string
}

// DeleteSaveResponse confirms a deleted slot
type DeleteSaveResponse struct {
	Slot string
}

// SaveGameHandler handles the SaveGame command
type SaveGameHandler struct {
	engine *simulation.Engine
}

// NewSaveGameHandler creates a new SaveGameHandler
func NewSaveGameHandler(engine *simulation.Engine) *SaveGameHandler {
	return &SaveGameHandler{engine: engine}
}

// Handle executes the SaveGame command
func (h *SaveGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*SaveGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveGameCommand")
	}

	savedAt, err := h.engine.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	return &SaveGameResponse{Slot: h.engine.Slot(), SavedAt: savedAt}, nil
}

// LoadGameHandler handles the LoadGame command
type LoadGameHandler struct {
	engine *simulation.Engine
}

// NewLoadGameHandler creates a new LoadGameHandler
func NewLoadGameHandler(engine *simulation.Engine) *LoadGameHandler {
	return &LoadGameHandler{engine: engine}
}

// Handle executes the LoadGame command. An unreadable save degrades to
// "no save" and is reported through Reason rather than as an error.
func (h *LoadGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*LoadGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadGameCommand")
	}

	resp := &LoadGameResponse{Slot: h.engine.Slot()}
	loaded, err := h.engine.Load(ctx)
	switch {
	case errors.Is(err, simulation.ErrPersistenceRead):
		resp.Reason = err.Error()
		common.LoggerFromContext(ctx).Log(shared.LevelWarn, "Save unreadable, keeping current game", map[string]interface{}{
			"slot":  resp.Slot,
			"error": err.Error(),
		})
	case err != nil:
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	resp.Loaded = loaded
	resp.Info = h.engine.TimeInfo()
	return resp, nil
}

// NewGameHandler handles the NewGame command
type NewGameHandler struct {
	engine *simulation.Engine
}

// NewNewGameHandler creates a new NewGameHandler
func NewNewGameHandler(engine *simulation.Engine) *NewGameHandler {
	return &NewGameHandler{engine: engine}
}

// Handle executes the NewGame command
func (h *NewGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*NewGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *NewGameCommand")
	}

	if err := h.engine.NewGame(); err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}
	return &NewGameResponse{Info: h.engine.TimeInfo()}, nil
}

// ImportSaveHandler handles the ImportSave command
type ImportSaveHandler struct {
	engine *simulation.Engine
}

// NewImportSaveHandler creates a new ImportSaveHandler
func NewImportSaveHandler(engine *simulation.Engine) *ImportSaveHandler {
	return &ImportSaveHandler{engine: engine}
}

// Handle executes the ImportSave command
func (h *ImportSaveHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportSaveCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportSaveCommand")
	}

	if err := h.engine.Import(ctx, cmd.Data); err != nil {
		return nil, fmt.Errorf("failed to import save: %w", err)
	}
	return &ImportSaveResponse{Info: h.engine.TimeInfo()}, nil
}

// DeleteSaveHandler handles the DeleteSave command
type DeleteSaveHandler struct {
	store simulation.SaveStore
}

// NewDeleteSaveHandler creates a new DeleteSaveHandler
func NewDeleteSaveHandler(store simulation.SaveStore) *DeleteSaveHandler {
	return &DeleteSaveHandler{store: store}
}

// Handle executes the DeleteSave command
func (h *DeleteSaveHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteSaveCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteSaveCommand")
	}

	if cmd.Slot == "" {
		return nil, fmt.Errorf("slot is required")
	}
	if err := h.store.Delete(ctx, cmd.Slot); err != nil {
		return nil, fmt.Errorf("failed to delete save %q: %w", cmd.Slot, err)
	}
	return &DeleteSaveResponse{Slot: cmd.Slot}, nil
}
