package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
)

// GormSaveStore implements simulation.SaveStore using GORM
type GormSaveStore struct {
	db *gorm.DB
}

// NewGormSaveStore creates a new GORM save store
func NewGormSaveStore(db *gorm.DB) *GormSaveStore {
	return &GormSaveStore{db: db}
}

// Write upserts the slot's snapshot. Every write gets a fresh save id.
func (r *GormSaveStore) Write(ctx context.Context, slot string, data []byte, savedAt time.Time) error {
	now := time.Now().UTC()
	model := SaveGameModel{
		Slot:      slot,
		SaveID:    uuid.NewString(),
		Data:      string(data),
		SavedAt:   savedAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var existing SaveGameModel
	result := r.db.WithContext(ctx).Where("slot = ?", slot).First(&existing)
	switch {
	case result.Error == nil:
		model.CreatedAt = existing.CreatedAt
	case !errors.Is(result.Error, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to find save: %w", result.Error)
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Read returns the slot's snapshot
func (r *GormSaveStore) Read(ctx context.Context, slot string) ([]byte, error) {
	var model SaveGameModel
	result := r.db.WithContext(ctx).Where("slot = ?", slot).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", simulation.ErrSaveNotFound, slot)
		}
		return nil, fmt.Errorf("failed to read save: %w", result.Error)
	}
	return []byte(model.Data), nil
}

// Delete removes the slot
func (r *GormSaveStore) Delete(ctx context.Context, slot string) error {
	result := r.db.WithContext(ctx).Where("slot = ?", slot).Delete(&SaveGameModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete save: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", simulation.ErrSaveNotFound, slot)
	}
	return nil
}

// List describes every stored slot, ordered by slot name
func (r *GormSaveStore) List(ctx context.Context) ([]simulation.SaveInfo, error) {
	var models []SaveGameModel
	result := r.db.WithContext(ctx).Order("slot").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list saves: %w", result.Error)
	}

	infos := make([]simulation.SaveInfo, 0, len(models))
	for _, model := range models {
		infos = append(infos, simulation.SaveInfo{
			Slot:    model.Slot,
			SavedAt: model.SavedAt,
			Size:    len(model.Data),
		})
	}
	return infos, nil
}
