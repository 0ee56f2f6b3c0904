package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/persistence"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/setup"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
	"github.com/andrescamacho/cozyhearth-go/test/helpers"
)

type saveGameContext struct {
	ctx      context.Context
	store    *persistence.GormSaveStore
	engine   *simulation.Engine
	mediator mediator.Mediator
	loaded   *commands.LoadGameResponse
	err      error
}

func (sg *saveGameContext) reset() {
	sg.ctx = context.Background()
	sg.store = nil
	sg.engine = nil
	sg.mediator = nil
	sg.loaded = nil
	sg.err = nil
}

func (sg *saveGameContext) requireGame() error {
	if sg.mediator == nil {
		return fmt.Errorf("no game available")
	}
	return nil
}

// Given steps

func (sg *saveGameContext) aNewGameInSlotBackedByTheDatabase(slot string) error {
	sg.store = persistence.NewGormSaveStore(helpers.SharedTestDB)

	opts := simulation.DefaultOptions()
	opts.Slot = slot
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	engine, err := simulation.NewEngine(opts, sg.store, clock, nil)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	m, err := setup.NewHandlerRegistry(engine, sg.store, nil).CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to create mediator: %w", err)
	}
	sg.engine = engine
	sg.mediator = m
	return nil
}

func (sg *saveGameContext) slotContains(slot, document string) error {
	if sg.store == nil {
		return fmt.Errorf("no save store available")
	}
	return sg.store.Write(sg.ctx, slot, []byte(document), time.Now())
}

// When steps

func (sg *saveGameContext) theGameBuys(quantity float64, path string) error {
	if err := sg.requireGame(); err != nil {
		return err
	}
	_, err := sg.mediator.Send(sg.ctx, &commands.BuyResourceCommand{Resource: path, Quantity: quantity})
	return err
}

func (sg *saveGameContext) theGameClockIsSkippedToHour(hour int) error {
	if err := sg.requireGame(); err != nil {
		return err
	}
	_, err := sg.mediator.Send(sg.ctx, &commands.SkipToHourCommand{Hour: hour})
	return err
}

func (sg *saveGameContext) theGameStartsCrafting(quantity int, recipeID string) error {
	if err := sg.requireGame(); err != nil {
		return err
	}
	_, err := sg.mediator.Send(sg.ctx, &commands.StartCraftingCommand{RecipeID: recipeID, Quantity: quantity})
	return err
}

func (sg *saveGameContext) theGameIsSaved() error {
	if err := sg.requireGame(); err != nil {
		return err
	}
	_, err := sg.mediator.Send(sg.ctx, &commands.SaveGameCommand{})
	return err
}

func (sg *saveGameContext) theGameIsLoaded() error {
	if err := sg.requireGame(); err != nil {
		return err
	}
	resp, err := sg.mediator.Send(sg.ctx, &commands.LoadGameCommand{})
	if err != nil {
		return err
	}
	sg.loaded = resp.(*commands.LoadGameResponse)
	return nil
}

func (sg *saveGameContext) theSaveDocumentIsImported(document string) error {
	if err := sg.requireGame(); err != nil {
		return err
	}
	_, sg.err = sg.mediator.Send(sg.ctx, &commands.ImportSaveCommand{Data: []byte(document)})
	return nil
}

// Then steps

func (sg *saveGameContext) theGameShouldBeLoaded() error {
	if sg.loaded == nil || !sg.loaded.Loaded {
		return fmt.Errorf("expected the save to be loaded")
	}
	return nil
}

func (sg *saveGameContext) noSaveShouldHaveBeenFound() error {
	if sg.loaded == nil {
		return fmt.Errorf("the game was never loaded")
	}
	if sg.loaded.Loaded {
		return fmt.Errorf("expected no save to be loaded")
	}
	return nil
}

func (sg *saveGameContext) theLoadShouldReportAReason() error {
	if sg.loaded == nil || sg.loaded.Reason == "" {
		return fmt.Errorf("expected the load to report why the save was unreadable")
	}
	return nil
}

func (sg *saveGameContext) theGameShouldHold(expected float64, path string) error {
	key, err := resource.ParseKey(path)
	if err != nil {
		return err
	}
	if got := sg.engine.Amount(key); !approxEqual(got, expected) {
		return fmt.Errorf("expected the game to hold %g %s, got %g", expected, key, got)
	}
	return nil
}

func (sg *saveGameContext) theGameClockShouldRead(expected string) error {
	resp, err := sg.mediator.Send(sg.ctx, &queries.GetTimeInfoQuery{})
	if err != nil {
		return err
	}
	if got := resp.(*queries.GetTimeInfoResponse).Info.TimeString; got != expected {
		return fmt.Errorf("expected game clock %s, got %s", expected, got)
	}
	return nil
}

func (sg *saveGameContext) theGameShouldHaveActiveCraftingProcesses(count int) error {
	resp, err := sg.mediator.Send(sg.ctx, &queries.GetActiveProcessesQuery{})
	if err != nil {
		return err
	}
	if got := len(resp.(*queries.GetActiveProcessesResponse).Processes); got != count {
		return fmt.Errorf("expected %d active crafting processes, got %d", count, got)
	}
	return nil
}

func (sg *saveGameContext) theImportShouldBeRejected() error {
	if sg.err == nil {
		return fmt.Errorf("expected the import to be rejected")
	}
	return nil
}

func (sg *saveGameContext) theInnkeeperShouldBeNamed(name string) error {
	if got := sg.engine.Player().Name; got != name {
		return fmt.Errorf("expected innkeeper %q, got %q", name, got)
	}
	return nil
}

func (sg *saveGameContext) theSaveListShouldContain(slot string) error {
	resp, err := sg.mediator.Send(sg.ctx, &queries.ListSavesQuery{})
	if err != nil {
		return err
	}
	for _, info := range resp.(*queries.ListSavesResponse).Saves {
		if info.Slot == slot {
			return nil
		}
	}
	return fmt.Errorf("expected save list to contain %s", slot)
}

func InitializeSaveGameScenario(ctx *godog.ScenarioContext) {
	sg := &saveGameContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		sg.reset()
		if err := helpers.TruncateAllTables(); err != nil {
			return ctx, err
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new game in slot "([^"]*)" backed by the database$`, sg.aNewGameInSlotBackedByTheDatabase)
	ctx.Step(`^slot "([^"]*)" contains "([^"]*)"$`, sg.slotContains)
	ctx.Step(`^slot "([^"]*)" contains '([^']*)'$`, sg.slotContains)

	// When steps
	ctx.Step(`^the game buys ([0-9.]+) "([^"]*)"$`, sg.theGameBuys)
	ctx.Step(`^the game clock is skipped to hour (\d+)$`, sg.theGameClockIsSkippedToHour)
	ctx.Step(`^the game starts crafting (\d+) "([^"]*)"$`, sg.theGameStartsCrafting)
	ctx.Step(`^the game is saved$`, sg.theGameIsSaved)
	ctx.Step(`^the game is loaded$`, sg.theGameIsLoaded)
	ctx.Step(`^the save document '([^']*)' is imported$`, sg.theSaveDocumentIsImported)

	// Then steps
	ctx.Step(`^the game should be loaded$`, sg.theGameShouldBeLoaded)
	ctx.Step(`^no save should have been found$`, sg.noSaveShouldHaveBeenFound)
	ctx.Step(`^the load should report a reason$`, sg.theLoadShouldReportAReason)
	ctx.Step(`^the game should hold ([0-9.]+) "([^"]*)"$`, sg.theGameShouldHold)
	ctx.Step(`^the game clock should read "([^"]*)"$`, sg.theGameClockShouldRead)
	ctx.Step(`^the game should have (\d+) active crafting process(?:es)?$`, sg.theGameShouldHaveActiveCraftingProcesses)
	ctx.Step(`^the import should be rejected$`, sg.theImportShouldBeRejected)
	ctx.Step(`^the innkeeper should be named "([^"]*)"$`, sg.theInnkeeperShouldBeNamed)
	ctx.Step(`^the save list should contain "([^"]*)"$`, sg.theSaveListShouldContain)
}
