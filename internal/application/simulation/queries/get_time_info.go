package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
)

// GetTimeInfoQuery reads the game clock
type GetTimeInfoQuery struct{}

// GetTimeInfoResponse carries the clock's composite view
type GetTimeInfoResponse struct {
	Info gametime.TimeInfo
}

// GetTimeInfoHandler handles the GetTimeInfo query
type GetTimeInfoHandler struct {
	engine *simulation.Engine
}

// NewGetTimeInfoHandler creates a new GetTimeInfoHandler
func NewGetTimeInfoHandler(engine *simulation.Engine) *GetTimeInfoHandler {
	return &GetTimeInfoHandler{engine: engine}
}

// Handle executes the GetTimeInfo query
func (h *GetTimeInfoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetTimeInfoQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTimeInfoQuery")
	}
	return &GetTimeInfoResponse{Info: h.engine.TimeInfo()}, nil
}
