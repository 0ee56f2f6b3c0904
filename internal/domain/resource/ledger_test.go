package resource_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

func newTestLedger(t *testing.T) (*resource.Ledger, *events.Recorder) {
	t.Helper()
	bus := events.NewBus(nil)
	recorder := events.NewRecorder()
	bus.Subscribe(recorder)

	ledger, err := resource.NewDefaultLedger(bus, nil)
	require.NoError(t, err)
	recorder.Drain()
	return ledger, recorder
}

var sugar = resource.NewKey(resource.CategoryIngredients, "sugar")

func TestLedger_StartingStock(t *testing.T) {
	ledger, _ := newTestLedger(t)

	assert.Equal(t, 100.0, ledger.Amount(resource.Gold))
	assert.Equal(t, 10.0, ledger.Amount(resource.Flour))
	assert.Equal(t, 15.0, ledger.Amount(resource.Wood))
	assert.Equal(t, 50.0, ledger.Amount(resource.GardenWater))
	assert.Equal(t, 5.0, ledger.Amount(resource.MustParseKey("garden.seeds.vegetable")))
	assert.Equal(t, 0.0, ledger.Amount(resource.Bread))
}

func TestLedger_LimitResolution(t *testing.T) {
	ledger, _ := newTestLedger(t)

	assert.True(t, math.IsInf(ledger.Limit(resource.Gold), 1))
	assert.Equal(t, 50.0, ledger.Limit(resource.Flour))
	assert.Equal(t, 30.0, ledger.Limit(resource.Wood))
	assert.Equal(t, 20.0, ledger.Limit(resource.MustParseKey("garden.seeds.magical")))
	assert.Equal(t, 100.0, ledger.Limit(resource.GardenWater))
	assert.Equal(t, 50.0, ledger.Limit(resource.Fertilizer))
}

func TestLedger_AddResourceClampsAndReportsLimit(t *testing.T) {
	// Arrange
	ledger, recorder := newTestLedger(t)

	// Act
	limitReached, err := ledger.AddResource(resource.Wood, 100)

	// Assert
	require.NoError(t, err)
	assert.True(t, limitReached)
	assert.Equal(t, 30.0, ledger.Amount(resource.Wood))

	got := recorder.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, events.ResourceChangedData{
		Category: "materials", Type: "wood", OldAmount: 15, NewAmount: 30, Change: 15,
	}, got[0].Data)
	assert.Equal(t, events.ResourceLimitReachedData{Category: "materials", Type: "wood", Limit: 30}, got[1].Data)
}

func TestLedger_AddResourceBelowLimit(t *testing.T) {
	ledger, recorder := newTestLedger(t)

	limitReached, err := ledger.AddResource(resource.Flour, 2.5)

	require.NoError(t, err)
	assert.False(t, limitReached)
	assert.Equal(t, 12.5, ledger.Amount(resource.Flour))
	assert.Equal(t, 1, recorder.Len())
}

func TestLedger_AddResourceRejectsInvalidInput(t *testing.T) {
	ledger, recorder := newTestLedger(t)

	_, err := ledger.AddResource(resource.NewKey(resource.CategoryMaterials, "unobtainium"), 1)
	assert.ErrorIs(t, err, resource.ErrUnknownResource)

	_, err = ledger.AddResource(resource.Flour, 0)
	assert.ErrorIs(t, err, resource.ErrInvalidAmount)

	_, err = ledger.AddResource(resource.Flour, -3)
	assert.ErrorIs(t, err, resource.ErrInvalidAmount)

	_, err = ledger.AddResource(resource.Flour, math.NaN())
	assert.ErrorIs(t, err, resource.ErrInvalidAmount)

	assert.Equal(t, 10.0, ledger.Amount(resource.Flour))
	assert.Equal(t, 0, recorder.Len())
}

func TestLedger_RemoveResource(t *testing.T) {
	ledger, _ := newTestLedger(t)

	require.NoError(t, ledger.RemoveResource(resource.Flour, 4))
	assert.Equal(t, 6.0, ledger.Amount(resource.Flour))

	err := ledger.RemoveResource(resource.Flour, 7)
	var insufficient *resource.InsufficientResourceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 7.0, insufficient.Required)
	assert.Equal(t, 6.0, insufficient.Available)
	assert.Equal(t, 6.0, ledger.Amount(resource.Flour))

	assert.ErrorIs(t, ledger.RemoveResource(resource.Flour, 0), resource.ErrInvalidAmount)
	assert.ErrorIs(t, ledger.RemoveResource(resource.NewKey(resource.CategoryGarden, "moss"), 1), resource.ErrUnknownResource)
}

func TestLedger_AmountOfUnknownResourceIsZero(t *testing.T) {
	ledger, _ := newTestLedger(t)

	assert.Equal(t, 0.0, ledger.Amount(resource.NewKey(resource.CategoryIngredients, "saffron")))
}

func TestLedger_StaysWithinBounds(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ops := []struct {
		add    bool
		amount float64
	}{
		{true, 12}, {false, 30}, {true, 100}, {false, 0.5}, {true, 0.25},
		{false, 49.75}, {false, 1}, {true, 7.5}, {true, 60}, {false, 50},
	}

	for _, op := range ops {
		if op.add {
			_, _ = ledger.AddResource(resource.Flour, op.amount)
		} else {
			_ = ledger.RemoveResource(resource.Flour, op.amount)
		}
		amount := ledger.Amount(resource.Flour)
		assert.GreaterOrEqual(t, amount, 0.0)
		assert.LessOrEqual(t, amount, ledger.Limit(resource.Flour))
	}
}

func TestLedger_ConsumeResourcesIsAllOrNothing(t *testing.T) {
	// Arrange
	ledger, recorder := newTestLedger(t)
	before := ledger.State()
	req := resource.Requirements{
		resource.Flour: 2,
		resource.Wood:  500,
	}

	// Act
	err := ledger.ConsumeResources(req)

	// Assert
	assert.ErrorIs(t, err, resource.ErrInsufficientResource)
	assert.Equal(t, before, ledger.State())
	assert.Equal(t, 0, recorder.Len())
	assert.False(t, ledger.HasEnoughResources(req))
}

func TestLedger_ConsumeResourcesDebitsEveryEntry(t *testing.T) {
	ledger, _ := newTestLedger(t)
	req := resource.Requirements{
		resource.Flour: 2,
		resource.Wood:  5,
		sugar:          0,
	}

	require.True(t, ledger.HasEnoughResources(req))
	require.NoError(t, ledger.ConsumeResources(req))

	assert.Equal(t, 8.0, ledger.Amount(resource.Flour))
	assert.Equal(t, 10.0, ledger.Amount(resource.Wood))
	assert.Equal(t, 5.0, ledger.Amount(sugar))
}

func TestLedger_ConsumeResourcesRejectsUnknownEntry(t *testing.T) {
	ledger, _ := newTestLedger(t)
	before := ledger.State()

	err := ledger.ConsumeResources(resource.Requirements{
		resource.Flour: 1,
		resource.NewKey(resource.CategoryIngredients, "saffron"): 1,
	})

	assert.ErrorIs(t, err, resource.ErrUnknownResource)
	assert.Equal(t, before, ledger.State())
}

func TestLedger_Shortfalls(t *testing.T) {
	ledger, _ := newTestLedger(t)

	got := ledger.Shortfalls(resource.Requirements{
		resource.Flour: 12,
		resource.Wood:  1,
	})

	require.Len(t, got, 1)
	assert.Equal(t, resource.Shortfall{Key: resource.Flour, Required: 12, Available: 10}, got[0])
}

func TestLedger_BuyResource(t *testing.T) {
	ledger, _ := newTestLedger(t)

	require.NoError(t, ledger.BuyResource(resource.Wood, 5))

	assert.Equal(t, 85.0, ledger.Amount(resource.Gold))
	assert.Equal(t, 20.0, ledger.Amount(resource.Wood))
}

func TestLedger_BuyResourceCapsAtLimit(t *testing.T) {
	ledger, _ := newTestLedger(t)

	require.NoError(t, ledger.BuyResource(resource.Wood, 20))

	assert.Equal(t, 40.0, ledger.Amount(resource.Gold))
	assert.Equal(t, 30.0, ledger.Amount(resource.Wood))
}

func TestLedger_BuyResourceWithoutEnoughGold(t *testing.T) {
	ledger, _ := newTestLedger(t)
	before := ledger.State()

	err := ledger.BuyResource(resource.MustParseKey("ingredients.moonwater"), 5)

	assert.ErrorIs(t, err, resource.ErrInsufficientResource)
	assert.Equal(t, before, ledger.State())
}

func TestLedger_BuyResourceRefundsWhenDeliveryFails(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ghost := resource.NewKey(resource.CategoryMaterials, "ghostwood")
	require.NoError(t, ledger.SetMarketPrice(ghost, 4))

	err := ledger.BuyResource(ghost, 2)

	assert.ErrorIs(t, err, resource.ErrUnknownResource)
	assert.Equal(t, 100.0, ledger.Amount(resource.Gold))
}

func TestLedger_BuyResourceNotForSale(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.BuyResource(resource.Bread, 1)

	assert.ErrorIs(t, err, resource.ErrNotTradable)
}

func TestLedger_SellResourceAtHalfPrice(t *testing.T) {
	ledger, _ := newTestLedger(t)

	require.NoError(t, ledger.SellResource(resource.Wood, 4))

	assert.Equal(t, 106.0, ledger.Amount(resource.Gold))
	assert.Equal(t, 11.0, ledger.Amount(resource.Wood))

	price, ok := ledger.SellPrice(resource.Wood)
	require.True(t, ok)
	assert.Equal(t, 1.5, price)
}

func TestLedger_SellResourceRequiresStock(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.SellResource(resource.Wood, 16)

	assert.ErrorIs(t, err, resource.ErrInsufficientResource)
	assert.Equal(t, 100.0, ledger.Amount(resource.Gold))
	assert.Equal(t, 15.0, ledger.Amount(resource.Wood))
}

func TestLedger_ProcessGeneration(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.ProcessGeneration(0.5)
	assert.Equal(t, 55.0, ledger.Amount(resource.GardenWater))

	ledger.ProcessGeneration(10)
	assert.Equal(t, 100.0, ledger.Amount(resource.GardenWater))
	assert.Equal(t, 10.0, ledger.Amount(resource.Flour))
}

func TestLedger_ProcessConsumptionDecaysMultiplicatively(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.ProcessConsumption(1)

	assert.InDelta(t, 9.0, ledger.Amount(resource.Flour), 1e-9)
	assert.InDelta(t, 4.5, ledger.Amount(sugar), 1e-9)
	assert.Equal(t, 15.0, ledger.Amount(resource.Wood))

	ledger.ProcessConsumption(1)
	assert.InDelta(t, 8.1, ledger.Amount(resource.Flour), 1e-9)
}

func TestLedger_ProcessConsumptionNeverGoesNegative(t *testing.T) {
	ledger, _ := newTestLedger(t)
	require.NoError(t, ledger.SetFlatConsumptionRate(resource.Wood, 4))

	ledger.ProcessConsumption(20)

	assert.Equal(t, 0.0, ledger.Amount(resource.Flour))
	assert.Equal(t, 0.0, ledger.Amount(resource.Wood))
}

func TestLedger_DecayStacksScopeAndSpecificRates(t *testing.T) {
	ledger, _ := newTestLedger(t)
	require.NoError(t, ledger.SetResourceLimit(resource.Flour, 200))
	_, err := ledger.AddResource(resource.Flour, 90)
	require.NoError(t, err)
	require.NoError(t, ledger.SetConsumptionRate(resource.Flour, 0.05))

	ledger.ProcessConsumption(1)

	// 100 → 90 from the ingredients rate, then 5% of the remainder
	assert.InDelta(t, 85.5, ledger.Amount(resource.Flour), 1e-9)
	assert.InDelta(t, 4.5, ledger.Amount(sugar), 1e-9)
}

func TestLedger_ZeroSpecificDecayKeepsScopeRate(t *testing.T) {
	ledger, _ := newTestLedger(t)
	require.NoError(t, ledger.SetConsumptionRate(sugar, 0))

	ledger.ProcessConsumption(1)

	assert.InDelta(t, 4.5, ledger.Amount(sugar), 1e-9)
	assert.InDelta(t, 9.0, ledger.Amount(resource.Flour), 1e-9)
}

func TestLedger_SetResourceLimitCapsExistingStock(t *testing.T) {
	ledger, recorder := newTestLedger(t)

	require.NoError(t, ledger.SetResourceLimit(resource.Wood, 12))

	assert.Equal(t, 12.0, ledger.Amount(resource.Wood))
	assert.Equal(t, 12.0, ledger.Limit(resource.Wood))
	assert.Equal(t, 1, recorder.Len())

	require.NoError(t, ledger.SetResourceLimit(resource.CategoryScope(resource.CategoryIngredients), 8))
	assert.Equal(t, 8.0, ledger.Amount(resource.Flour))
	assert.Equal(t, 5.0, ledger.Amount(sugar))

	assert.ErrorIs(t, ledger.SetResourceLimit(resource.Wood, -1), resource.ErrInvalidAmount)
}

func TestLedger_AddResourceType(t *testing.T) {
	ledger, _ := newTestLedger(t)
	honey := resource.NewKey(resource.CategoryIngredients, "honey")

	require.NoError(t, ledger.AddResourceType(honey, 80))

	assert.Equal(t, 50.0, ledger.Amount(honey))
	assert.ErrorIs(t, ledger.AddResourceType(honey, 1), resource.ErrResourceExists)
	assert.ErrorIs(t, ledger.AddResourceType(resource.NewKey("potions", "mana"), 1), resource.ErrUnknownResource)
}

func TestLedger_StateRoundTrip(t *testing.T) {
	ledger, _ := newTestLedger(t)
	_, _ = ledger.AddResource(resource.Flour, 0.375)
	ledger.ProcessConsumption(0.3)
	state := ledger.State()

	other, _ := newTestLedger(t)
	other.LoadState(state)

	assert.Equal(t, state, other.State())
	assert.Equal(t, ledger.Entries(), other.Entries())
}

func TestLedger_LoadStateResetsMissingAndClamps(t *testing.T) {
	ledger, recorder := newTestLedger(t)

	ledger.LoadState(resource.State{
		resource.CategoryMaterials: {"wood": 999, "ghostwood": 3},
		resource.CategoryCurrency:  {"gold": -5},
	})

	assert.Equal(t, 30.0, ledger.Amount(resource.Wood))
	assert.Equal(t, 0.0, ledger.Amount(resource.Gold))
	assert.Equal(t, 0.0, ledger.Amount(resource.Flour))
	assert.Equal(t, 0, recorder.Len())
}

func TestLedger_CategoryEntries(t *testing.T) {
	ledger, _ := newTestLedger(t)

	entries := ledger.CategoryEntries(resource.CategoryGarden)

	require.Len(t, entries, 7)
	assert.Equal(t, "seeds.vegetable", entries[0].Key.Type)
	assert.Equal(t, 20.0, entries[0].Limit)
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, 9, resource.DisplayAmount(9.99))
	assert.Equal(t, 0, resource.DisplayAmount(0.4))
}
