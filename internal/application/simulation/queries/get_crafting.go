package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"
)

// GetCraftableRecipesQuery lists recipes the innkeeper has the skill for
type GetCraftableRecipesQuery struct{}

// GetCraftableRecipesResponse carries the recipes in registration order
type GetCraftableRecipesResponse struct {
	Recipes []crafting.Recipe
}

// GetActiveProcessesQuery lists in-flight crafting processes
type GetActiveProcessesQuery struct{}

// GetActiveProcessesResponse carries processes in start order
type GetActiveProcessesResponse struct {
	Processes []crafting.ProcessInfo
}

// GetCraftableRecipesHandler handles the GetCraftableRecipes query
type GetCraftableRecipesHandler struct {
	engine *simulation.Engine
}

// NewGetCraftableRecipesHandler creates a new GetCraftableRecipesHandler
func NewGetCraftableRecipesHandler(engine *simulation.Engine) *GetCraftableRecipesHandler {
	return &GetCraftableRecipesHandler{engine: engine}
}

// Handle executes the GetCraftableRecipes query
func (h *GetCraftableRecipesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetCraftableRecipesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCraftableRecipesQuery")
	}
	return &GetCraftableRecipesResponse{Recipes: h.engine.CraftableRecipes()}, nil
}

// GetActiveProcessesHandler handles the GetActiveProcesses query
type GetActiveProcessesHandler struct {
	engine *simulation.Engine
}

// NewGetActiveProcessesHandler creates a new GetActiveProcessesHandler
func NewGetActiveProcessesHandler(engine *simulation.Engine) *GetActiveProcessesHandler {
	return &GetActiveProcessesHandler{engine: engine}
}

// Handle executes the GetActiveProcesses query
func (h *GetActiveProcessesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetActiveProcessesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetActiveProcessesQuery")
	}
	return &GetActiveProcessesResponse{Processes: h.engine.ActiveProcesses()}, nil
}
