package persistence

import (
	"time"
)

// SaveGameModel represents the save_games table. Data holds the snapshot
// JSON exactly as written by the engine.
type SaveGameModel struct {
	Slot      string    `gorm:"column:slot;primaryKey"`
	SaveID    string    `gorm:"column:save_id;not null"`
	Data      string    `gorm:"column:data;type:text;not null"`
	SavedAt   time.Time `gorm:"column:saved_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (SaveGameModel) TableName() string {
	return "save_games"
}
