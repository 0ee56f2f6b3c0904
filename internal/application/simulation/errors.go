package simulation

import (
	"errors"
	"fmt"
)

var (
	ErrPersistenceRead  = errors.New("failed to read save")
	ErrPersistenceWrite = errors.New("failed to write save")
	ErrInvalidSave      = errors.New("invalid save data")
)

// PersistenceError reports a failed save or load against a slot
type PersistenceError struct {
	Op   string
	Slot string
	Err  error
}

const (
	opRead  = "read"
	opWrite = "write"
)

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for slot %q: %v", e.Op, e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is matches ErrPersistenceRead or ErrPersistenceWrite by operation
func (e *PersistenceError) Is(target error) bool {
	switch target {
	case ErrPersistenceRead:
		return e.Op == opRead
	case ErrPersistenceWrite:
		return e.Op == opWrite
	}
	return false
}
