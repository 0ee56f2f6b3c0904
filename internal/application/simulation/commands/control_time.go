package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
)

// SkipToHourCommand jumps the clock forward to Hour, crossing midnight if needed
type SkipToHourCommand struct {
	Hour int
}

// SetTimeScaleCommand sets the game minutes advanced per real second
type SetTimeScaleCommand struct {
	Scale float64
}

// SetPausedCommand pauses or resumes the game clock
type SetPausedCommand struct {
	Paused bool
}

// TimeResponse carries the clock after a time command
type TimeResponse struct {
	Info gametime.TimeInfo
}

// SkipToHourHandler handles the SkipToHour command
type SkipToHourHandler struct {
	engine *simulation.Engine
}

// NewSkipToHourHandler creates a new SkipToHourHandler
func NewSkipToHourHandler(engine *simulation.Engine) *SkipToHourHandler {
	return &SkipToHourHandler{engine: engine}
}

// Handle executes the SkipToHour command
func (h *SkipToHourHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SkipToHourCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SkipToHourCommand")
	}

	if err := h.engine.SkipToHour(cmd.Hour); err != nil {
		return nil, fmt.Errorf("failed to skip to hour %d: %w", cmd.Hour, err)
	}
	return &TimeResponse{Info: h.engine.TimeInfo()}, nil
}

// SetTimeScaleHandler handles the SetTimeScale command
type SetTimeScaleHandler struct {
	engine *simulation.Engine
}

// NewSetTimeScaleHandler creates a new SetTimeScaleHandler
func NewSetTimeScaleHandler(engine *simulation.Engine) *SetTimeScaleHandler {
	return &SetTimeScaleHandler{engine: engine}
}

// Handle executes the SetTimeScale command
func (h *SetTimeScaleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetTimeScaleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetTimeScaleCommand")
	}

	if err := h.engine.SetTimeScale(cmd.Scale); err != nil {
		return nil, fmt.Errorf("failed to set time scale: %w", err)
	}
	return &TimeResponse{Info: h.engine.TimeInfo()}, nil
}

// SetPausedHandler handles the SetPaused command
type SetPausedHandler struct {
	engine *simulation.Engine
}

// NewSetPausedHandler creates a new SetPausedHandler
func NewSetPausedHandler(engine *simulation.Engine) *SetPausedHandler {
	return &SetPausedHandler{engine: engine}
}

// Handle executes the SetPaused command
func (h *SetPausedHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetPausedCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetPausedCommand")
	}

	h.engine.SetPaused(cmd.Paused)
	return &TimeResponse{Info: h.engine.TimeInfo()}, nil
}
