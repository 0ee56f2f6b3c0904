package crafting

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// ProcessStatus is the lifecycle state of a crafting process
type ProcessStatus string

const (
	// ProcessStatusReserved means the inputs are debited but the countdown has not begun
	ProcessStatusReserved ProcessStatus = "RESERVED"

	// ProcessStatusRunning means the process is counting down
	ProcessStatusRunning ProcessStatus = "RUNNING"

	// ProcessStatusCompleted means the outputs were credited
	ProcessStatusCompleted ProcessStatus = "COMPLETED"
)

// Process is one in-flight craft of a recipe.
//
// Invariants:
// - Transitions only go RESERVED → RUNNING → COMPLETED
// - Outputs are credited at most once, on the transition to COMPLETED
type Process struct {
	id            string
	recipe        Recipe
	quantity      int
	totalSeconds  float64
	timeRemaining float64
	status        ProcessStatus
	reservedAt    time.Time
	startedAt     *time.Time
	completedAt   *time.Time
	clock         shared.Clock
}

func newProcess(recipe Recipe, quantity int, clock shared.Clock) *Process {
	total := recipe.DurationSeconds(quantity)
	return &Process{
		id:            uuid.NewString(),
		recipe:        recipe,
		quantity:      quantity,
		totalSeconds:  total,
		timeRemaining: total,
		status:        ProcessStatusReserved,
		reservedAt:    clock.Now(),
		clock:         clock,
	}
}

func (p *Process) start() error {
	if p.status != ProcessStatusReserved {
		return fmt.Errorf("%w: cannot start from %s state", ErrInvalidTransition, p.status)
	}
	now := p.clock.Now()
	p.status = ProcessStatusRunning
	p.startedAt = &now
	return nil
}

// advance subtracts elapsed seconds and reports whether the budget is spent
func (p *Process) advance(seconds float64) bool {
	if p.status != ProcessStatusRunning {
		return false
	}
	p.timeRemaining -= seconds
	return p.timeRemaining <= 0
}

func (p *Process) complete() error {
	if p.status != ProcessStatusRunning {
		return fmt.Errorf("%w: cannot complete from %s state", ErrInvalidTransition, p.status)
	}
	now := p.clock.Now()
	p.status = ProcessStatusCompleted
	p.completedAt = &now
	return nil
}

// Info returns a detached snapshot of the process
func (p *Process) Info() ProcessInfo {
	remaining := p.timeRemaining
	if remaining < 0 {
		remaining = 0
	}
	progress := 1.0
	if p.totalSeconds > 0 {
		progress = 1 - remaining/p.totalSeconds
	}
	info := ProcessInfo{
		ID:                   p.id,
		RecipeID:             p.recipe.ID,
		RecipeName:           p.recipe.Name,
		Quantity:             p.quantity,
		TotalSeconds:         p.totalSeconds,
		TimeRemainingSeconds: remaining,
		Progress:             progress,
		Status:               p.status,
		ReservedAt:           p.reservedAt,
	}
	if p.startedAt != nil {
		info.StartedAt = *p.startedAt
	}
	return info
}

// ProcessInfo is a read-only view of a crafting process
type ProcessInfo struct {
	ID                   string
	RecipeID             string
	RecipeName           string
	Quantity             int
	TotalSeconds         float64
	TimeRemainingSeconds float64
	Progress             float64
	Status               ProcessStatus
	ReservedAt           time.Time
	StartedAt            time.Time
}
