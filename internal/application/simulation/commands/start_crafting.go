package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/common"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// StartCraftingCommand starts quantity batches of a recipe
type StartCraftingCommand struct {
	RecipeID string
	Quantity int
}

// StartCraftingResponse carries the newly running process
type StartCraftingResponse struct {
	Process crafting.ProcessInfo
}

// StartCraftingHandler handles the StartCrafting command
type StartCraftingHandler struct {
	engine *simulation.Engine
}

// NewStartCraftingHandler creates a new StartCraftingHandler
func NewStartCraftingHandler(engine *simulation.Engine) *StartCraftingHandler {
	return &StartCraftingHandler{engine: engine}
}

// Handle executes the StartCrafting command
func (h *StartCraftingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*StartCraftingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartCraftingCommand")
	}

	// Quantity defaults to a single batch
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}

	info, err := h.engine.StartCrafting(cmd.RecipeID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to start crafting %s: %w", cmd.RecipeID, err)
	}

	common.LoggerFromContext(ctx).Log(shared.LevelInfo, "Crafting started", map[string]interface{}{
		"process":  info.ID,
		"recipe":   info.RecipeID,
		"quantity": info.Quantity,
		"seconds":  info.TimeRemainingSeconds,
	})

	return &StartCraftingResponse{Process: info}, nil
}
