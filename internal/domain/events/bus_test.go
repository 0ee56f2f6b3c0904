package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	bus := events.NewBus(clock)
	var order []string
	bus.Subscribe(events.ListenerFunc(func(ev events.Event) { order = append(order, "first") }))
	bus.Subscribe(events.ListenerFunc(func(ev events.Event) { order = append(order, "second") }))

	// Act
	bus.Publish(events.EventTypeCraftingFailed, events.CraftingFailedData{RecipeID: "bread", Reason: "x"})

	// Assert
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_StampsEventsWithIncreasingIDs(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	bus := events.NewBus(clock)
	recorder := events.NewRecorder()
	bus.Subscribe(recorder)

	bus.Publish(events.EventTypeHourChanged, events.HourChangedData{Hour: 7})
	clock.Advance(time.Second)
	bus.Publish(events.EventTypeHourChanged, events.HourChangedData{Hour: 8})

	got := recorder.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
	assert.True(t, got[1].At.After(got[0].At))
	assert.Equal(t, 0, recorder.Len())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus(nil)
	calls := 0
	unsubscribe := bus.Subscribe(events.ListenerFunc(func(ev events.Event) { calls++ }))

	bus.Publish(events.EventTypeDayChanged, nil)
	unsubscribe()
	bus.Publish(events.EventTypeDayChanged, nil)

	assert.Equal(t, 1, calls)
}

func TestRecorder_FiltersByType(t *testing.T) {
	bus := events.NewBus(nil)
	recorder := events.NewRecorder(events.EventTypeCraftingCompleted)
	bus.Subscribe(recorder)

	bus.Publish(events.EventTypeResourceChanged, events.ResourceChangedData{})
	bus.Publish(events.EventTypeCraftingCompleted, events.CraftingCompletedData{Recipe: "bread", Quantity: 1})

	got := recorder.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, events.EventTypeCraftingCompleted, got[0].Type)
}
