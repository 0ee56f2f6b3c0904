package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

type craftingContext struct {
	ledger    *resource.Ledger
	scheduler *crafting.Scheduler
	skills    crafting.Skills
	recorder  *events.Recorder
	completed map[string]bool
	started   crafting.ProcessInfo
	err       error
}

func (cc *craftingContext) reset() {
	cc.ledger = nil
	cc.scheduler = nil
	cc.skills = crafting.Skills{}
	cc.recorder = nil
	cc.completed = make(map[string]bool)
	cc.started = crafting.ProcessInfo{}
	cc.err = nil
}

// Given steps

func (cc *craftingContext) aCraftingWorkshopWithTheDefaultRecipes() error {
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	bus := events.NewBus(clock)
	cc.recorder = events.NewRecorder(events.EventTypeCraftingCompleted)
	bus.Subscribe(cc.recorder)

	ledger, err := resource.NewDefaultLedger(bus, nil)
	if err != nil {
		return fmt.Errorf("failed to build default ledger: %w", err)
	}
	catalog, err := crafting.NewDefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to build default catalog: %w", err)
	}

	cc.ledger = ledger
	cc.scheduler = crafting.NewScheduler(catalog, ledger, clock, bus, nil)
	return nil
}

func (cc *craftingContext) theInnkeeperHasSkill(name string, level int) error {
	cc.skills[name] = level
	return nil
}

// When steps

func (cc *craftingContext) iStartCrafting(quantity int, recipeID string) error {
	if cc.scheduler == nil {
		return fmt.Errorf("no workshop available")
	}
	cc.started, cc.err = cc.scheduler.StartCrafting(recipeID, quantity, cc.skills)
	return nil
}

func (cc *craftingContext) theWorkshopWorksForSeconds(seconds int) error {
	if cc.scheduler == nil {
		return fmt.Errorf("no workshop available")
	}
	cc.scheduler.Update(time.Duration(seconds) * time.Second)
	for _, ev := range cc.recorder.Drain() {
		cc.completed[ev.Data.(events.CraftingCompletedData).Recipe] = true
	}
	return nil
}

// Then steps

func (cc *craftingContext) craftingShouldHaveStarted() error {
	if cc.err != nil {
		return fmt.Errorf("expected crafting to start, got %v", cc.err)
	}
	if cc.started.Status != crafting.ProcessStatusRunning {
		return fmt.Errorf("expected a running process, got status %s", cc.started.Status)
	}
	return nil
}

func (cc *craftingContext) craftingShouldFailWith(reason string) error {
	if cc.err == nil {
		return fmt.Errorf("expected crafting to fail with %q, but it started", reason)
	}
	if got := crafting.FailureReason(cc.err); got != reason {
		return fmt.Errorf("expected failure reason %q, got %q", reason, got)
	}
	return nil
}

func (cc *craftingContext) theWorkshopLedgerShouldHold(expected float64, path string) error {
	key, err := resource.ParseKey(path)
	if err != nil {
		return err
	}
	if got := cc.ledger.Amount(key); !approxEqual(got, expected) {
		return fmt.Errorf("expected %g %s, got %g", expected, key, got)
	}
	return nil
}

func (cc *craftingContext) craftingProcessesShouldBeActive(count int) error {
	if got := len(cc.scheduler.ActiveProcesses()); got != count {
		return fmt.Errorf("expected %d active processes, got %d", count, got)
	}
	return nil
}

func (cc *craftingContext) theActiveProcessShouldNeedSeconds(seconds float64) error {
	active := cc.scheduler.ActiveProcesses()
	if len(active) != 1 {
		return fmt.Errorf("expected exactly one active process, got %d", len(active))
	}
	if got := active[0].TimeRemainingSeconds; !approxEqual(got, seconds) {
		return fmt.Errorf("expected %g seconds remaining, got %g", seconds, got)
	}
	return nil
}

func (cc *craftingContext) aCompletionNotificationShouldHaveBeenRaisedFor(recipeID string) error {
	if !cc.completed[recipeID] {
		return fmt.Errorf("expected a CraftingCompleted notification for %s", recipeID)
	}
	return nil
}

func (cc *craftingContext) theCraftableRecipesShouldBe(list string) error {
	var got []string
	for _, r := range cc.scheduler.CraftableRecipes(cc.skills) {
		got = append(got, r.ID)
	}
	if joined := strings.Join(got, ", "); joined != list {
		return fmt.Errorf("expected craftable recipes %q, got %q", list, joined)
	}
	return nil
}

func InitializeCraftingScenario(ctx *godog.ScenarioContext) {
	cc := &craftingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a crafting workshop with the default recipes$`, cc.aCraftingWorkshopWithTheDefaultRecipes)
	ctx.Step(`^the innkeeper has "([^"]*)" skill (\d+)$`, cc.theInnkeeperHasSkill)

	// When steps
	ctx.Step(`^I start crafting (-?\d+) "([^"]*)"$`, cc.iStartCrafting)
	ctx.Step(`^the workshop works for (\d+) seconds$`, cc.theWorkshopWorksForSeconds)

	// Then steps
	ctx.Step(`^crafting should have started$`, cc.craftingShouldHaveStarted)
	ctx.Step(`^crafting should fail with "([^"]*)"$`, cc.craftingShouldFailWith)
	ctx.Step(`^the workshop ledger should hold ([0-9.]+) "([^"]*)"$`, cc.theWorkshopLedgerShouldHold)
	ctx.Step(`^(\d+) crafting process(?:es)? should be active$`, cc.craftingProcessesShouldBeActive)
	ctx.Step(`^the active process should need ([0-9.]+) seconds$`, cc.theActiveProcessShouldNeedSeconds)
	ctx.Step(`^a "CraftingCompleted" notification should have been raised for "([^"]*)"$`, cc.aCompletionNotificationShouldHaveBeenRaisedFor)
	ctx.Step(`^the craftable recipes should be "([^"]*)"$`, cc.theCraftableRecipesShouldBe)
}
