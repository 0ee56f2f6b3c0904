package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
)

// ListSavesQuery lists stored save slots
type ListSavesQuery struct{}

// ListSavesResponse carries the stored slots
type ListSavesResponse struct {
	Saves []simulation.SaveInfo
}

// ExportSaveQuery serializes the current game as a save blob
type ExportSaveQuery struct{}

// ExportSaveResponse carries the exported blob
type ExportSaveResponse struct {
	Data []byte
}

// ListSavesHandler handles the ListSaves query
type ListSavesHandler struct {
	store simulation.SaveStore
}

// NewListSavesHandler creates a new ListSavesHandler
func NewListSavesHandler(store simulation.SaveStore) *ListSavesHandler {
	return &ListSavesHandler{store: store}
}

// Handle executes the ListSaves query
func (h *ListSavesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListSavesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSavesQuery")
	}

	saves, err := h.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	return &ListSavesResponse{Saves: saves}, nil
}

// ExportSaveHandler handles the ExportSave query
type ExportSaveHandler struct {
	engine *simulation.Engine
}

// NewExportSaveHandler creates a new ExportSaveHandler
func NewExportSaveHandler(engine *simulation.Engine) *ExportSaveHandler {
	return &ExportSaveHandler{engine: engine}
}

// Handle executes the ExportSave query
func (h *ExportSaveHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ExportSaveQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportSaveQuery")
	}

	data, err := h.engine.Export()
	if err != nil {
		return nil, fmt.Errorf("failed to export save: %w", err)
	}
	return &ExportSaveResponse{Data: data}, nil
}
