package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

// GetResourcesQuery lists ledger entries, optionally for some categories only
type GetResourcesQuery struct {
	Categories []string
}

// ResourceView is one ledger entry with its market prices
type ResourceView struct {
	Key       resource.Key
	Amount    float64
	Display   int
	Limit     float64
	BuyPrice  float64
	SellPrice float64
	Tradable  bool
}

// GetResourcesResponse carries the matching entries in registration order
type GetResourcesResponse struct {
	Resources []ResourceView
}

// GetResourcesHandler handles the GetResources query
type GetResourcesHandler struct {
	engine *simulation.Engine
}

// NewGetResourcesHandler creates a new GetResourcesHandler
func NewGetResourcesHandler(engine *simulation.Engine) *GetResourcesHandler {
	return &GetResourcesHandler{engine: engine}
}

// Handle executes the GetResources query
func (h *GetResourcesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetResourcesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetResourcesQuery")
	}

	categories := make([]resource.Category, 0, len(query.Categories))
	for _, name := range query.Categories {
		category, err := resource.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("invalid category: %w", err)
		}
		categories = append(categories, category)
	}

	entries := h.engine.Resources(categories...)
	views := make([]ResourceView, 0, len(entries))
	for _, entry := range entries {
		view := ResourceView{
			Key:     entry.Key,
			Amount:  entry.Amount,
			Display: resource.DisplayAmount(entry.Amount),
			Limit:   entry.Limit,
		}
		view.BuyPrice, view.SellPrice, view.Tradable = h.engine.MarketPrices(entry.Key)
		views = append(views, view)
	}

	return &GetResourcesResponse{Resources: views}, nil
}
