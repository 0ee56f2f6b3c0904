package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

// useTempEnvironment points configuration, saves, PID files and the user
// config at a fresh directory and resets the global flags.
func useTempEnvironment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CH_SAVE_BACKEND", "file")
	t.Setenv("CH_SAVE_DIRECTORY", dir)
	t.Setenv("CH_SIMULATION_PID_DIR", dir)
	t.Setenv("CH_LOGGING_LEVEL", "error")

	configPath, slotName, verbose = "", "", false
	t.Cleanup(func() { configPath, slotName, verbose = "", "", false })
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	// Flag variables are shared between invocations
	configPath, slotName, verbose = "", "", false
	root := NewRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func openTestSession(t *testing.T, slot string) *session {
	t.Helper()
	slotName = slot
	s, err := openSession(context.Background(), sessionOptions{})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestCLI_NewRefusesToOverwriteWithoutForce(t *testing.T) {
	useTempEnvironment(t)

	require.NoError(t, execute(t, "new", "--slot", "alpha"))
	assert.Error(t, execute(t, "new", "--slot", "alpha"))
	assert.NoError(t, execute(t, "new", "--slot", "alpha", "--force"))
}

func TestCLI_RejectsInvalidSlotFlag(t *testing.T) {
	useTempEnvironment(t)

	err := execute(t, "new", "--slot", "../outside")

	assert.ErrorContains(t, err, "invalid slot name")
}

func TestOpenSession_ClosesResourcesOnFailure(t *testing.T) {
	dir := useTempEnvironment(t)
	t.Setenv("CH_LOGGING_OUTPUT", "file")
	t.Setenv("CH_LOGGING_FILE_PATH", filepath.Join(dir, "cozyhearth.log"))
	slotName = "../outside"

	var (
		s   *session
		err error
	)
	require.NotPanics(t, func() {
		s, err = openSession(context.Background(), sessionOptions{})
	})

	assert.ErrorContains(t, err, "invalid slot name")
	assert.Nil(t, s)
	assert.FileExists(t, filepath.Join(dir, "cozyhearth.log"))
}

func TestCLI_MarketTradesAreSaved(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))

	require.NoError(t, execute(t, "market", "buy", "ingredients.flour", "5", "--slot", "alpha"))
	require.NoError(t, execute(t, "market", "sell", "materials.wood", "2", "--slot", "alpha"))

	s := openTestSession(t, "alpha")
	assert.Equal(t, 15.0, s.engine.Amount(resource.Flour))
	assert.Equal(t, 13.0, s.engine.Amount(resource.Wood))

	assert.Error(t, execute(t, "market", "buy", "ingredients.flour", "-1", "--slot", "alpha"))
	assert.Error(t, execute(t, "market", "buy", "ingredients.unobtainium", "1", "--slot", "alpha"))
}

func TestCLI_CraftStartCompletesBeforeSaving(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))

	require.NoError(t, execute(t, "craft", "start", "basicFurniture", "--slot", "alpha"))

	s := openTestSession(t, "alpha")
	assert.Equal(t, 1.0, s.engine.Amount(resource.Furniture))
	assert.Equal(t, 10.0, s.engine.Amount(resource.Wood))
	assert.Equal(t, 6, s.engine.TimeInfo().Hour, "clock held while crafting")
}

func TestCLI_TimeCommands(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))

	require.NoError(t, execute(t, "time", "skip", "20", "--slot", "alpha"))
	require.NoError(t, execute(t, "time", "scale", "30", "--slot", "alpha"))
	assert.Error(t, execute(t, "time", "scale", "0", "--slot", "alpha"))

	s := openTestSession(t, "alpha")
	info := s.engine.TimeInfo()
	assert.Equal(t, 20, info.Hour)
	assert.Equal(t, 30.0, info.TimeScale)
}

func TestCLI_InteractRecordsHistory(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))

	require.NoError(t, execute(t, "interact", "object", "hearth", "tend", "--slot", "alpha"))
	assert.Error(t, execute(t, "interact", "object", "hearth", "dance", "--slot", "alpha"))

	s := openTestSession(t, "alpha")
	assert.True(t, s.engine.HasInteractedBefore("hearth"))
}

func TestCLI_RunFastForwardsAndSaves(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))

	require.NoError(t, execute(t, "run", "--fast", "--tick", "100ms", "--duration", "2s", "--slot", "alpha"))

	s := openTestSession(t, "alpha")
	assert.Equal(t, 8, s.engine.TimeInfo().Hour)
}

func TestCLI_SavesExportImportDelete(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))
	require.NoError(t, execute(t, "market", "buy", "ingredients.flour", "5", "--slot", "alpha"))

	exported := filepath.Join(t.TempDir(), "alpha.json")
	require.NoError(t, execute(t, "saves", "export", "--out", exported, "--slot", "alpha"))
	require.NoError(t, execute(t, "saves", "import", exported, "--slot", "beta"))
	require.NoError(t, execute(t, "saves", "list"))

	s := openTestSession(t, "beta")
	assert.Equal(t, 15.0, s.engine.Amount(resource.Flour))

	require.NoError(t, execute(t, "saves", "delete", "alpha"))
	assert.Error(t, execute(t, "saves", "delete", "alpha"))
}

func TestCLI_ConfigSetSlotIsUsedByDefault(t *testing.T) {
	useTempEnvironment(t)

	require.NoError(t, execute(t, "config", "set-slot", "gamma"))
	require.NoError(t, execute(t, "new"))
	require.NoError(t, execute(t, "market", "buy", "ingredients.flour", "1"))

	s := openTestSession(t, "")
	assert.Equal(t, "gamma", s.slot)
	assert.Equal(t, 11.0, s.engine.Amount(resource.Flour))

	require.NoError(t, execute(t, "config", "clear-slot"))
}

func TestRunLoop_StopsAfterDuration(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))
	s := openTestSession(t, "alpha")

	loop := &runLoop{
		engine:   s.engine,
		mediator: s.mediator,
		logger:   s.logger,
		tick:     300 * time.Millisecond,
		duration: time.Second,
		fast:     true,
		autosave: time.Hour,
	}
	stats := loop.Run(context.Background())

	assert.Equal(t, 4, stats.Ticks)
	assert.Equal(t, time.Second, stats.Simulated)
	assert.InDelta(t, 60.0, stats.GameMinutes, 1e-9)
	assert.Equal(t, 1, stats.Autosaves)
}

func TestRunLoop_StopsWhenCancelled(t *testing.T) {
	useTempEnvironment(t)
	require.NoError(t, execute(t, "new", "--slot", "alpha"))
	s := openTestSession(t, "alpha")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := &runLoop{
		engine:   s.engine,
		mediator: s.mediator,
		logger:   s.logger,
		tick:     time.Millisecond,
		autosave: time.Hour,
	}
	stats := loop.Run(ctx)

	assert.Equal(t, 0, stats.Ticks)
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://inn:****@db:5432/cozy", maskPassword("postgres://inn:secret@db:5432/cozy"))
	assert.Equal(t, "postgres://db/cozy", maskPassword("postgres://db/cozy"))
	assert.Equal(t, "postgres://inn:****@db/cozy?sslmode=disable", maskPassword("postgres://inn:p%40ss@db/cozy?sslmode=disable"))
	assert.Equal(t, "postgres://inn@db/cozy", maskPassword("postgres://inn@db/cozy"))
}

func TestParseQuantity(t *testing.T) {
	q, err := parseQuantity("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, q)

	for _, bad := range []string{"0", "-3", "lots"} {
		_, err := parseQuantity(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatRequirements(t *testing.T) {
	assert.Equal(t, "-", formatRequirements(nil))
	assert.Equal(t, "1 ingredients.water, 2 ingredients.flour",
		formatRequirements(resource.Requirements{resource.Flour: 2, resource.Water: 1}))
}
