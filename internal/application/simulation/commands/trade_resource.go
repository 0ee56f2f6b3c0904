package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

// BuyResourceCommand buys units of a resource at market price
type BuyResourceCommand struct {
	Resource string // dotted key, e.g. "ingredients.flour"
	Quantity float64
}

// SellResourceCommand sells units of a resource at half market price
type SellResourceCommand struct {
	Resource string
	Quantity float64
}

// TradeResponse reports a completed market trade
type TradeResponse struct {
	Resource    resource.Key
	Quantity    float64
	UnitPrice   float64
	Total       float64
	NewAmount   float64
	GoldBalance float64
}

// BuyResourceHandler handles the BuyResource command
type BuyResourceHandler struct {
	engine *simulation.Engine
}

// NewBuyResourceHandler creates a new BuyResourceHandler
func NewBuyResourceHandler(engine *simulation.Engine) *BuyResourceHandler {
	return &BuyResourceHandler{engine: engine}
}

// Handle executes the BuyResource command
func (h *BuyResourceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyResourceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyResourceCommand")
	}

	key, err := resource.ParseKey(cmd.Resource)
	if err != nil {
		return nil, fmt.Errorf("invalid resource: %w", err)
	}

	if err := h.engine.BuyResource(key, cmd.Quantity); err != nil {
		return nil, fmt.Errorf("failed to buy %s: %w", key, err)
	}

	buy, _, _ := h.engine.MarketPrices(key)
	return tradeResponse(h.engine, key, cmd.Quantity, buy), nil
}

// SellResourceHandler handles the SellResource command
type SellResourceHandler struct {
	engine *simulation.Engine
}

// NewSellResourceHandler creates a new SellResourceHandler
func NewSellResourceHandler(engine *simulation.Engine) *SellResourceHandler {
	return &SellResourceHandler{engine: engine}
}

// Handle executes the SellResource command
func (h *SellResourceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellResourceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SellResourceCommand")
	}

	key, err := resource.ParseKey(cmd.Resource)
	if err != nil {
		return nil, fmt.Errorf("invalid resource: %w", err)
	}

	if err := h.engine.SellResource(key, cmd.Quantity); err != nil {
		return nil, fmt.Errorf("failed to sell %s: %w", key, err)
	}

	_, sell, _ := h.engine.MarketPrices(key)
	return tradeResponse(h.engine, key, cmd.Quantity, sell), nil
}

func tradeResponse(engine *simulation.Engine, key resource.Key, quantity, unitPrice float64) *TradeResponse {
	return &TradeResponse{
		Resource:    key,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice * quantity,
		NewAmount:   engine.Amount(key),
		GoldBalance: engine.Amount(resource.Gold),
	}
}
