package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/setup"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
	"github.com/andrescamacho/cozyhearth-go/test/helpers"
)

func newMediator(t *testing.T) (mediator.Mediator, *simulation.Engine, *helpers.MockSaveStore) {
	t.Helper()
	store := helpers.NewMockSaveStore()
	engine, err := simulation.NewEngine(simulation.DefaultOptions(), store, shared.NewMockClock(time.Unix(1700000000, 0)), nil)
	require.NoError(t, err)
	m, err := setup.NewHandlerRegistry(engine, store, nil).CreateConfiguredMediator()
	require.NoError(t, err)
	return m, engine, store
}

func TestMediator_MarketCommands(t *testing.T) {
	m, _, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.BuyResourceCommand{Resource: "ingredients.flour", Quantity: 5})
	require.NoError(t, err)
	trade := resp.(*commands.TradeResponse)
	assert.Equal(t, 2.0, trade.UnitPrice)
	assert.Equal(t, 15.0, trade.NewAmount)
	assert.Equal(t, 90.0, trade.GoldBalance)

	resp, err = m.Send(ctx, &commands.SellResourceCommand{Resource: "ingredients.flour", Quantity: 4})
	require.NoError(t, err)
	trade = resp.(*commands.TradeResponse)
	assert.Equal(t, 1.0, trade.UnitPrice)
	assert.Equal(t, 94.0, trade.GoldBalance)

	_, err = m.Send(ctx, &commands.BuyResourceCommand{Resource: "ingredients.flour", Quantity: 1000})
	assert.ErrorIs(t, err, resource.ErrInsufficientResource)

	_, err = m.Send(ctx, &commands.BuyResourceCommand{Resource: "nonsense", Quantity: 1})
	assert.Error(t, err)
}

func TestMediator_CraftingCommandsAndQueries(t *testing.T) {
	m, engine, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &queries.GetCraftableRecipesQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.GetCraftableRecipesResponse).Recipes, 1)

	resp, err = m.Send(ctx, &commands.StartCraftingCommand{RecipeID: "basicFurniture"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.(*commands.StartCraftingResponse).Process.Quantity)

	_, err = m.Send(ctx, &commands.StartCraftingCommand{RecipeID: "basicFurniture", Quantity: 3})
	assert.ErrorIs(t, err, crafting.ErrInsufficientResources)

	resp, err = m.Send(ctx, &queries.GetActiveProcessesQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.GetActiveProcessesResponse).Processes, 1)

	engine.Tick(time.Hour)

	resp, err = m.Send(ctx, &queries.GetResourcesQuery{Categories: []string{"materials"}})
	require.NoError(t, err)
	var furniture float64
	for _, view := range resp.(*queries.GetResourcesResponse).Resources {
		if view.Key == resource.Furniture {
			furniture = view.Amount
		}
	}
	assert.Equal(t, 1.0, furniture)
}

func TestMediator_TimeCommands(t *testing.T) {
	m, _, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.SkipToHourCommand{Hour: 3})
	require.NoError(t, err)
	info := resp.(*commands.TimeResponse).Info
	assert.Equal(t, 3, info.Hour)
	assert.Equal(t, 2, info.Day)

	_, err = m.Send(ctx, &commands.SkipToHourCommand{Hour: 24})
	assert.Error(t, err)

	resp, err = m.Send(ctx, &commands.SetPausedCommand{Paused: true})
	require.NoError(t, err)
	assert.True(t, resp.(*commands.TimeResponse).Info.Paused)

	_, err = m.Send(ctx, &commands.SetTimeScaleCommand{Scale: -1})
	assert.Error(t, err)

	resp, err = m.Send(ctx, &queries.GetTimeInfoQuery{})
	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.(*queries.GetTimeInfoResponse).Info.TimeScale)
}

func TestMediator_AdvanceTimeHoldingClock(t *testing.T) {
	m, engine, _ := newMediator(t)
	ctx := context.Background()
	_, err := m.Send(ctx, &commands.StartCraftingCommand{RecipeID: "basicFurniture"})
	require.NoError(t, err)

	resp, err := m.Send(ctx, &commands.AdvanceTimeCommand{Duration: time.Hour, Step: time.Minute, HoldClock: true})
	require.NoError(t, err)

	advance := resp.(*commands.AdvanceTimeResponse)
	assert.Equal(t, 60, advance.Ticks)
	assert.Equal(t, 1, advance.Completed)
	assert.Equal(t, 0.0, advance.GameMinutes)
	assert.Equal(t, 6, advance.Info.Hour)
	assert.False(t, advance.Info.Paused)
	assert.Equal(t, 1.0, engine.Amount(resource.Furniture))
}

func TestMediator_AdvanceTimeRestoresPausedState(t *testing.T) {
	m, engine, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.AdvanceTimeCommand{Duration: time.Second, HoldClock: true})
	require.NoError(t, err)
	assert.False(t, resp.(*commands.AdvanceTimeResponse).Info.Paused)
	assert.False(t, engine.TimeInfo().Paused)

	engine.SetPaused(true)
	resp, err = m.Send(ctx, &commands.AdvanceTimeCommand{Duration: time.Second, HoldClock: true})
	require.NoError(t, err)
	assert.True(t, resp.(*commands.AdvanceTimeResponse).Info.Paused)
	assert.True(t, engine.TimeInfo().Paused)

	engine.SetPaused(false)
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Send(cancelled, &commands.AdvanceTimeCommand{Duration: time.Second, HoldClock: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, engine.TimeInfo().Paused)
}

func TestMediator_AdvanceTimeRunsClock(t *testing.T) {
	m, _, _ := newMediator(t)

	resp, err := m.Send(context.Background(), &commands.AdvanceTimeCommand{Duration: 2500 * time.Millisecond, Step: time.Second})
	require.NoError(t, err)

	advance := resp.(*commands.AdvanceTimeResponse)
	assert.Equal(t, 3, advance.Ticks)
	assert.InDelta(t, 150.0, advance.GameMinutes, 1e-9)
	assert.Equal(t, 8, advance.Info.Hour)
}

func TestMediator_InteractionCommand(t *testing.T) {
	m, _, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.QueueInteractionCommand{Kind: "npc", TargetID: "traveler", InteractionType: "dialog"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.(*commands.QueueInteractionResponse).Pending)

	_, err = m.Send(ctx, &commands.QueueInteractionCommand{Kind: "ghost", TargetID: "traveler", InteractionType: "dialog"})
	assert.Error(t, err)
}

func TestMediator_PersistenceCommands(t *testing.T) {
	m, _, store := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.LoadGameCommand{})
	require.NoError(t, err)
	assert.False(t, resp.(*commands.LoadGameResponse).Loaded)

	resp, err = m.Send(ctx, &commands.SaveGameCommand{})
	require.NoError(t, err)
	assert.Equal(t, simulation.DefaultSlot, resp.(*commands.SaveGameResponse).Slot)

	resp, err = m.Send(ctx, &queries.ListSavesQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.ListSavesResponse).Saves, 1)

	store.FailReads = true
	resp, err = m.Send(ctx, &commands.LoadGameCommand{})
	require.NoError(t, err)
	load := resp.(*commands.LoadGameResponse)
	assert.False(t, load.Loaded)
	assert.NotEmpty(t, load.Reason)
	store.FailReads = false

	resp, err = m.Send(ctx, &queries.ExportSaveQuery{})
	require.NoError(t, err)
	blob := resp.(*queries.ExportSaveResponse).Data
	_, err = m.Send(ctx, &commands.ImportSaveCommand{Data: blob})
	require.NoError(t, err)

	_, err = m.Send(ctx, &commands.DeleteSaveCommand{Slot: simulation.DefaultSlot})
	require.NoError(t, err)
	_, err = m.Send(ctx, &commands.DeleteSaveCommand{Slot: simulation.DefaultSlot})
	assert.ErrorIs(t, err, simulation.ErrSaveNotFound)
}
