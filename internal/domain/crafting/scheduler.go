package crafting

import (
	"fmt"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// Scheduler runs crafting processes against a resource store.
//
// Inputs are debited when a process starts and outputs are credited when its
// real-time budget runs out. Countdowns use raw elapsed time, so pausing or
// rescaling the game clock does not affect them. Started processes cannot be
// cancelled.
type Scheduler struct {
	catalog *Catalog
	store   ResourceStore
	active  []*Process

	clock     shared.Clock
	publisher events.Publisher
	logger    shared.Logger
}

func NewScheduler(catalog *Catalog, store ResourceStore, clock shared.Clock, publisher events.Publisher, logger shared.Logger) *Scheduler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Scheduler{
		catalog:   catalog,
		store:     store,
		clock:     clock,
		publisher: events.PublisherOrDiscard(publisher),
		logger:    shared.LoggerOrNoOp(logger),
	}
}

// Catalog returns the recipe catalog the scheduler draws from
func (s *Scheduler) Catalog() *Catalog {
	return s.catalog
}

// StartCrafting validates the request, reserves the scaled inputs and
// enqueues a running process. A failed start mutates nothing and raises a
// CraftingFailed notification.
func (s *Scheduler) StartCrafting(recipeID string, quantity int, skills Skills) (ProcessInfo, error) {
	recipe, ok := s.catalog.Get(recipeID)
	if !ok {
		return ProcessInfo{}, s.reject(recipeID, fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID))
	}

	if quantity < 1 {
		return ProcessInfo{}, s.reject(recipeID, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity))
	}

	if recipe.HasSkillRequirement() {
		if have := skills.Level(recipe.RequiredSkill); have < recipe.SkillLevel {
			return ProcessInfo{}, s.reject(recipeID, fmt.Errorf("%w: %s requires %s %d, have %d",
				ErrInsufficientSkill, recipe.ID, recipe.RequiredSkill, recipe.SkillLevel, have))
		}
	}

	inputs := recipe.ScaledInputs(quantity)
	if !s.store.HasEnoughResources(inputs) {
		return ProcessInfo{}, s.reject(recipeID, fmt.Errorf("%w: %s x%d needs %s",
			ErrInsufficientResources, recipe.ID, quantity, inputs))
	}

	if err := s.store.ConsumeResources(inputs); err != nil {
		return ProcessInfo{}, s.reject(recipeID, fmt.Errorf("%w: %v", ErrConsumptionFailed, err))
	}

	p := newProcess(recipe, quantity, s.clock)
	if err := p.start(); err != nil {
		return ProcessInfo{}, err
	}
	s.active = append(s.active, p)

	info := p.Info()
	s.logger.Log(shared.LevelInfo, "Crafting started", map[string]interface{}{
		"process_id":     info.ID,
		"recipe":         recipe.ID,
		"quantity":       quantity,
		"time_remaining": info.TimeRemainingSeconds,
	})
	s.publisher.Publish(events.EventTypeCraftingStarted, events.CraftingStartedData{
		ProcessID:            info.ID,
		Recipe:               recipe.ID,
		RecipeName:           recipe.Name,
		Quantity:             quantity,
		TimeRemainingSeconds: info.TimeRemainingSeconds,
	})
	return info, nil
}

func (s *Scheduler) reject(recipeID string, err error) error {
	reason := FailureReason(err)
	s.logger.Log(shared.LevelWarn, "Crafting failed to start", map[string]interface{}{
		"recipe": recipeID,
		"reason": reason,
		"error":  err.Error(),
	})
	s.publisher.Publish(events.EventTypeCraftingFailed, events.CraftingFailedData{
		RecipeID: recipeID,
		Reason:   reason,
	})
	return err
}

// Update counts every running process down by delta and settles, in start
// order, each one whose budget is spent. It returns how many completed.
func (s *Scheduler) Update(delta time.Duration) int {
	seconds := delta.Seconds()
	if seconds <= 0 || len(s.active) == 0 {
		return 0
	}

	var finished []*Process
	remaining := s.active[:0]
	for _, p := range s.active {
		if p.advance(seconds) {
			finished = append(finished, p)
			continue
		}
		remaining = append(remaining, p)
	}
	for i := len(remaining); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = remaining

	for _, p := range finished {
		s.settle(p)
	}
	return len(finished)
}

func (s *Scheduler) settle(p *Process) {
	if err := p.complete(); err != nil {
		s.logger.Log(shared.LevelError, "Crafting process in unexpected state", map[string]interface{}{
			"process_id": p.id,
			"error":      err.Error(),
		})
		return
	}

	outputs := p.recipe.ScaledOutputs(p.quantity)
	if err := s.store.CreditResources(outputs); err != nil {
		s.logger.Log(shared.LevelError, "Failed to credit crafting outputs", map[string]interface{}{
			"process_id": p.id,
			"recipe":     p.recipe.ID,
			"error":      err.Error(),
		})
		return
	}

	s.logger.Log(shared.LevelInfo, "Crafting completed", map[string]interface{}{
		"process_id": p.id,
		"recipe":     p.recipe.ID,
		"quantity":   p.quantity,
	})
	s.publisher.Publish(events.EventTypeCraftingCompleted, events.CraftingCompletedData{
		ProcessID:  p.id,
		Recipe:     p.recipe.ID,
		RecipeName: p.recipe.Name,
		Quantity:   p.quantity,
	})
}

// CraftableRecipes lists recipes whose skill gate is met and whose unscaled
// inputs are currently available. Nothing is reserved.
func (s *Scheduler) CraftableRecipes(skills Skills) []Recipe {
	var out []Recipe
	for _, r := range s.catalog.All() {
		if r.HasSkillRequirement() && skills.Level(r.RequiredSkill) < r.SkillLevel {
			continue
		}
		if !s.store.HasEnoughResources(r.Inputs) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ActiveProcesses returns snapshots of the running processes in start order
func (s *Scheduler) ActiveProcesses() []ProcessInfo {
	out := make([]ProcessInfo, 0, len(s.active))
	for _, p := range s.active {
		out = append(out, p.Info())
	}
	return out
}

// Reset drops every in-flight process without crediting outputs
func (s *Scheduler) Reset() {
	if n := len(s.active); n > 0 {
		s.logger.Log(shared.LevelInfo, "Discarding in-flight crafting processes", map[string]interface{}{
			"count": n,
		})
	}
	s.active = nil
}
