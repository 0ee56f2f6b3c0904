package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
)

// DefaultAdvanceStep is the real time covered by each tick of an advance
const DefaultAdvanceStep = 100 * time.Millisecond

// AdvanceTimeCommand runs the simulation forward by a span of real time in
// fixed steps, without sleeping. HoldClock keeps the game clock still while
// crafting and interactions progress.
type AdvanceTimeCommand struct {
	Duration  time.Duration
	Step      time.Duration
	HoldClock bool
}

// AdvanceTimeResponse summarizes the ticks that ran
type AdvanceTimeResponse struct {
	Ticks       int
	GameMinutes float64
	Completed   int
	Info        gametime.TimeInfo
}

// AdvanceTimeHandler handles the AdvanceTime command
type AdvanceTimeHandler struct {
	engine *simulation.Engine
}

// NewAdvanceTimeHandler creates a new AdvanceTimeHandler
func NewAdvanceTimeHandler(engine *simulation.Engine) *AdvanceTimeHandler {
	return &AdvanceTimeHandler{engine: engine}
}

// Handle executes the AdvanceTime command
func (h *AdvanceTimeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceTimeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceTimeCommand")
	}
	if cmd.Duration < 0 {
		return nil, fmt.Errorf("duration must be non-negative, got %s", cmd.Duration)
	}

	step := cmd.Step
	if step <= 0 {
		step = DefaultAdvanceStep
	}

	wasPaused := h.engine.TimeInfo().Paused
	if cmd.HoldClock {
		h.engine.SetPaused(true)
	}
	resp, err := h.run(ctx, cmd.Duration, step)
	if cmd.HoldClock {
		h.engine.SetPaused(wasPaused)
	}
	if err != nil {
		return nil, err
	}

	// Read after the paused state is restored
	resp.Info = h.engine.TimeInfo()
	return resp, nil
}

func (h *AdvanceTimeHandler) run(ctx context.Context, duration, step time.Duration) (*AdvanceTimeResponse, error) {
	resp := &AdvanceTimeResponse{}
	for remaining := duration; remaining > 0; remaining -= step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := h.engine.Tick(min(step, remaining))
		resp.Ticks++
		resp.GameMinutes += result.GameMinutes
		resp.Completed += result.Completed
	}
	return resp, nil
}
