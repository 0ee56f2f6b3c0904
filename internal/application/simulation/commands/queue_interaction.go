package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/interaction"
)

// QueueInteractionCommand queues an interaction with an object or NPC
type QueueInteractionCommand struct {
	Kind            string // "object" or "npc"
	TargetID        string
	InteractionType string
	Options         map[string]string
}

// QueueInteractionResponse reports the queue after enqueueing
type QueueInteractionResponse struct {
	Pending int
	Active  bool
}

// QueueInteractionHandler handles the QueueInteraction command
type QueueInteractionHandler struct {
	engine *simulation.Engine
}

// NewQueueInteractionHandler creates a new QueueInteractionHandler
func NewQueueInteractionHandler(engine *simulation.Engine) *QueueInteractionHandler {
	return &QueueInteractionHandler{engine: engine}
}

// Handle executes the QueueInteraction command
func (h *QueueInteractionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*QueueInteractionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *QueueInteractionCommand")
	}

	kind := interaction.Kind(cmd.Kind)
	if kind != interaction.KindObject && kind != interaction.KindNPC {
		return nil, fmt.Errorf("invalid interaction kind %q: must be object or npc", cmd.Kind)
	}

	err := h.engine.QueueInteraction(interaction.Request{
		Kind:            kind,
		TargetID:        cmd.TargetID,
		InteractionType: cmd.InteractionType,
		Options:         cmd.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to queue interaction: %w", err)
	}

	_, pending, active := h.engine.CurrentInteraction()
	return &QueueInteractionResponse{Pending: pending, Active: active}, nil
}
