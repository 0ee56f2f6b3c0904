package simulation

import (
	"context"
	"errors"
	"time"
)

// ErrSaveNotFound is returned by a SaveStore when a slot holds no save
var ErrSaveNotFound = errors.New("save not found")

// SaveInfo describes a stored save without loading it
type SaveInfo struct {
	Slot    string
	SavedAt time.Time
	Size    int
}

// SaveStore persists opaque snapshot blobs keyed by slot name
type SaveStore interface {
	Write(ctx context.Context, slot string, data []byte, savedAt time.Time) error
	Read(ctx context.Context, slot string) ([]byte, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]SaveInfo, error)
}
