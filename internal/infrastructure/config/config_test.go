package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: debug\n")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "database", cfg.Save.Backend)
	assert.Equal(t, "cozy_hearth_save", cfg.Save.Slot)
	assert.Equal(t, 5*time.Minute, cfg.Save.AutosaveInterval)
	assert.Equal(t, 30, cfg.Simulation.DaysPerSeason)
	assert.Equal(t, 60.0, cfg.Simulation.TimeScale)
	assert.Equal(t, 6, cfg.Simulation.StartHour)
	assert.Equal(t, 3*time.Second, cfg.Interaction.Dwell)
}

func TestLoadConfig_ReadsFileValues(t *testing.T) {
	path := writeConfig(t, `
simulation:
  days_per_season: 7
  time_scale: 120
  start_season: winter
save:
  backend: file
  directory: /tmp/inn-saves
  autosave_interval: 30s
interaction:
  history_limit: -1
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Simulation.DaysPerSeason)
	assert.Equal(t, 120.0, cfg.Simulation.TimeScale)
	assert.Equal(t, "winter", cfg.Simulation.StartSeason)
	assert.Equal(t, "file", cfg.Save.Backend)
	assert.Equal(t, "/tmp/inn-saves", cfg.Save.Directory)
	assert.Equal(t, 30*time.Second, cfg.Save.AutosaveInterval)
	assert.Equal(t, -1, cfg.Interaction.HistoryLimit)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "save:\n  slot: from_file\n")
	t.Setenv("CH_SAVE_SLOT", "from_env")
	t.Setenv("CH_LOGGING_FORMAT", "json")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Save.Slot)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown log level", "logging:\n  level: loud\n"},
		{"unknown backend", "save:\n  backend: cloud\n"},
		{"hour out of range", "simulation:\n  start_hour: 30\n"},
		{"unknown season", "simulation:\n  start_season: monsoon\n"},
		{"file output without path", "logging:\n  output: file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, config.ValidateConfig(config.Default()))
}

func TestUserConfigHandler_DefaultSlot(t *testing.T) {
	handler := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "config.json"))

	cfg, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultSlot)

	require.NoError(t, handler.SetDefaultSlot("autumn_run"))
	cfg, err = handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "autumn_run", cfg.DefaultSlot)

	require.NoError(t, handler.ClearDefaultSlot())
	cfg, err = handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultSlot)
}

func TestUserConfigHandler_RejectsInvalidSlot(t *testing.T) {
	handler := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))

	assert.Error(t, handler.SetDefaultSlot("../escape"))
	assert.Error(t, handler.SetDefaultSlot(""))

	require.NoError(t, handler.SetDefaultSlot("winter-2"))
	cfg, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "winter-2", cfg.DefaultSlot)
}

func TestValidateConfig_SeasonAndSlotRules(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.StartSeason = "Autumn"
	assert.NoError(t, config.ValidateConfig(cfg))

	cfg.Save.Slot = "my save"
	err := config.ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save.slot")

	assert.True(t, config.IsValidSlot("cozy_hearth_save"))
	assert.False(t, config.IsValidSlot("-leading"))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := config.DatabaseConfig{Type: "postgres", Host: "db", Port: 5433, User: "inn", Password: "pw", Name: "hearth", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=inn password=pw dbname=hearth sslmode=disable", pg.DSN())

	pg.URL = "postgresql://inn:pw@db:5433/hearth"
	assert.Equal(t, pg.URL, pg.DSN())

	lite := config.DatabaseConfig{Type: "sqlite"}
	assert.Equal(t, ":memory:", lite.DSN())
	assert.True(t, lite.InMemory())

	lite.Path = "saves/inn.db"
	assert.False(t, lite.InMemory())
}
