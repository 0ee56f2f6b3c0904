package crafting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

var cook = crafting.Skills{"cooking": 1, "crafting": 1}

type fixture struct {
	ledger    *resource.Ledger
	scheduler *crafting.Scheduler
	recorder  *events.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	bus := events.NewBus(clock)
	recorder := events.NewRecorder(
		events.EventTypeCraftingStarted,
		events.EventTypeCraftingCompleted,
		events.EventTypeCraftingFailed,
	)
	bus.Subscribe(recorder)

	ledger, err := resource.NewDefaultLedger(bus, nil)
	require.NoError(t, err)
	_, err = ledger.AddResource(resource.Water, 10)
	require.NoError(t, err)

	catalog, err := crafting.NewDefaultCatalog()
	require.NoError(t, err)

	return &fixture{
		ledger:    ledger,
		scheduler: crafting.NewScheduler(catalog, ledger, clock, bus, nil),
		recorder:  recorder,
	}
}

func TestStartCrafting_DebitsScaledInputsAndCreditsOnce(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	info, err := f.scheduler.StartCrafting("bread", 2, cook)

	// Assert - inputs debited immediately
	require.NoError(t, err)
	assert.Equal(t, 6.0, f.ledger.Amount(resource.Flour))
	assert.Equal(t, 8.0, f.ledger.Amount(resource.Water))
	assert.Equal(t, 3600.0, info.TimeRemainingSeconds)
	assert.Equal(t, crafting.ProcessStatusRunning, info.Status)
	assert.NotEmpty(t, info.ID)

	// Act - run past the budget and keep ticking
	assert.Equal(t, 0, f.scheduler.Update(3599*time.Second))
	assert.Equal(t, 0.0, f.ledger.Amount(resource.Bread))
	assert.Equal(t, 1, f.scheduler.Update(2*time.Second))
	for i := 0; i < 10; i++ {
		f.scheduler.Update(time.Hour)
	}

	// Assert - outputs credited exactly once
	assert.Equal(t, 2.0, f.ledger.Amount(resource.Bread))
	assert.Empty(t, f.scheduler.ActiveProcesses())

	got := f.recorder.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, events.EventTypeCraftingStarted, got[0].Type)
	assert.Equal(t, events.CraftingCompletedData{
		ProcessID: info.ID, Recipe: "bread", RecipeName: "Bread", Quantity: 2,
	}, got[1].Data)
}

func TestStartCrafting_InsufficientResourcesLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t)
	f.ledger.LoadState(resource.State{
		resource.CategoryIngredients: {"flour": 1, "water": 5},
	})
	before := f.ledger.State()

	_, err := f.scheduler.StartCrafting("bread", 1, cook)

	assert.ErrorIs(t, err, crafting.ErrInsufficientResources)
	assert.Equal(t, 1.0, f.ledger.Amount(resource.Flour))
	assert.Equal(t, before, f.ledger.State())
	assert.Empty(t, f.scheduler.ActiveProcesses())

	got := f.recorder.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, events.CraftingFailedData{RecipeID: "bread", Reason: "Insufficient resources"}, got[0].Data)
}

func TestStartCrafting_UnknownRecipe(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduler.StartCrafting("cake", 1, cook)

	assert.ErrorIs(t, err, crafting.ErrUnknownRecipe)
	got := f.recorder.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "Recipe does not exist", got[0].Data.(events.CraftingFailedData).Reason)
}

func TestStartCrafting_InsufficientSkill(t *testing.T) {
	f := newFixture(t)
	before := f.ledger.State()

	_, err := f.scheduler.StartCrafting("bread", 1, crafting.Skills{"crafting": 3})

	assert.ErrorIs(t, err, crafting.ErrInsufficientSkill)
	assert.Equal(t, before, f.ledger.State())
}

func TestStartCrafting_InvalidQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduler.StartCrafting("bread", 0, cook)

	assert.ErrorIs(t, err, crafting.ErrInvalidQuantity)
	assert.Equal(t, 10.0, f.ledger.Amount(resource.Flour))
}

type failingStore struct{}

func (failingStore) HasEnoughResources(resource.Requirements) bool { return true }
func (failingStore) ConsumeResources(resource.Requirements) error {
	return errors.New("stock changed underneath")
}
func (failingStore) CreditResources(resource.Requirements) error { return nil }

func TestStartCrafting_ConsumptionFailed(t *testing.T) {
	catalog, err := crafting.NewDefaultCatalog()
	require.NoError(t, err)
	scheduler := crafting.NewScheduler(catalog, failingStore{}, nil, nil, nil)

	_, err = scheduler.StartCrafting("basicFurniture", 1, cook)

	assert.ErrorIs(t, err, crafting.ErrConsumptionFailed)
	assert.Equal(t, "Resource consumption failed", crafting.FailureReason(err))
	assert.Empty(t, scheduler.ActiveProcesses())
}

func TestUpdate_SettlesSeveralProcessesInStartOrder(t *testing.T) {
	f := newFixture(t)
	first, err := f.scheduler.StartCrafting("basicFurniture", 1, cook)
	require.NoError(t, err)
	second, err := f.scheduler.StartCrafting("bread", 1, cook)
	require.NoError(t, err)
	f.recorder.Drain()

	completed := f.scheduler.Update(time.Hour)

	assert.Equal(t, 2, completed)
	assert.Equal(t, 1.0, f.ledger.Amount(resource.Furniture))
	assert.Equal(t, 1.0, f.ledger.Amount(resource.Bread))
	got := f.recorder.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].Data.(events.CraftingCompletedData).ProcessID)
	assert.Equal(t, second.ID, got[1].Data.(events.CraftingCompletedData).ProcessID)
}

func TestUpdate_PartialProgress(t *testing.T) {
	f := newFixture(t)
	_, err := f.scheduler.StartCrafting("basicFurniture", 1, cook)
	require.NoError(t, err)

	f.scheduler.Update(15 * time.Minute)

	active := f.scheduler.ActiveProcesses()
	require.Len(t, active, 1)
	assert.Equal(t, 2700.0, active[0].TimeRemainingSeconds)
	assert.InDelta(t, 0.25, active[0].Progress, 1e-9)
}

func TestCraftableRecipes(t *testing.T) {
	f := newFixture(t)

	all := f.scheduler.CraftableRecipes(cook)
	require.Len(t, all, 2)
	assert.Equal(t, "bread", all[0].ID)

	onlyCrafting := f.scheduler.CraftableRecipes(crafting.Skills{"crafting": 1})
	require.Len(t, onlyCrafting, 1)
	assert.Equal(t, "basicFurniture", onlyCrafting[0].ID)

	require.NoError(t, f.ledger.RemoveResource(resource.Wood, 11))
	assert.Len(t, f.scheduler.CraftableRecipes(cook), 1)
}

func TestReset_DropsProcessesWithoutCredit(t *testing.T) {
	f := newFixture(t)
	_, err := f.scheduler.StartCrafting("bread", 1, cook)
	require.NoError(t, err)

	f.scheduler.Reset()
	f.scheduler.Update(time.Hour)

	assert.Empty(t, f.scheduler.ActiveProcesses())
	assert.Equal(t, 0.0, f.ledger.Amount(resource.Bread))
}
