package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/persistence"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
	"github.com/andrescamacho/cozyhearth-go/test/helpers"
)

func saveStores(t *testing.T) map[string]simulation.SaveStore {
	fileStore, err := persistence.NewFileSaveStore(t.TempDir())
	require.NoError(t, err)
	return map[string]simulation.SaveStore{
		"gorm": persistence.NewGormSaveStore(helpers.NewTestDB(t)),
		"file": fileStore,
	}
}

func TestSaveStore_WriteAndRead(t *testing.T) {
	for name, store := range saveStores(t) {
		t.Run(name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			savedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

			// Act
			err := store.Write(ctx, "slot_a", []byte(`{"saveTimestamp":1}`), savedAt)

			// Assert
			require.NoError(t, err)
			data, err := store.Read(ctx, "slot_a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"saveTimestamp":1}`, string(data))
		})
	}
}

func TestSaveStore_WriteReplacesExistingSlot(t *testing.T) {
	for name, store := range saveStores(t) {
		t.Run(name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			require.NoError(t, store.Write(ctx, "slot_a", []byte(`{"v":1}`), time.Now()))

			// Act
			require.NoError(t, store.Write(ctx, "slot_a", []byte(`{"v":2}`), time.Now()))

			// Assert
			data, err := store.Read(ctx, "slot_a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(data))
			saves, err := store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, saves, 1)
		})
	}
}

func TestSaveStore_MissingSlot(t *testing.T) {
	for name, store := range saveStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Read(ctx, "nothing")
			assert.ErrorIs(t, err, simulation.ErrSaveNotFound)

			err = store.Delete(ctx, "nothing")
			assert.ErrorIs(t, err, simulation.ErrSaveNotFound)
		})
	}
}

func TestSaveStore_ListAndDelete(t *testing.T) {
	for name, store := range saveStores(t) {
		t.Run(name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			savedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
			require.NoError(t, store.Write(ctx, "beta", []byte(`{}`), savedAt))
			require.NoError(t, store.Write(ctx, "alpha", []byte(`{"a":1}`), savedAt))

			// Act
			saves, err := store.List(ctx)

			// Assert
			require.NoError(t, err)
			require.Len(t, saves, 2)
			assert.Equal(t, "alpha", saves[0].Slot)
			assert.Equal(t, "beta", saves[1].Slot)
			assert.Equal(t, 7, saves[0].Size)
			assert.True(t, saves[0].SavedAt.Equal(savedAt))

			require.NoError(t, store.Delete(ctx, "alpha"))
			saves, err = store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, saves, 1)
		})
	}
}

func TestFileSaveStore_RejectsPathLikeSlots(t *testing.T) {
	store, err := persistence.NewFileSaveStore(t.TempDir())
	require.NoError(t, err)

	err = store.Write(context.Background(), "../escape", []byte(`{}`), time.Now())
	assert.Error(t, err)
}

func TestEngine_SavesThroughGormStore(t *testing.T) {
	// Arrange
	store := persistence.NewGormSaveStore(helpers.NewTestDB(t))
	engine, err := simulation.NewEngine(simulation.DefaultOptions(), store, nil, nil)
	require.NoError(t, err)
	require.NoError(t, engine.SkipToHour(14))

	// Act
	_, err = engine.Save(context.Background())
	require.NoError(t, err)
	require.NoError(t, engine.NewGame())
	loaded, err := engine.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 14, engine.TimeInfo().Hour)
}
