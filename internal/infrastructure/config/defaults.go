package config

import (
	"os"
	"path/filepath"
	"time"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "cozyhearth.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "cozyhearth"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "cozyhearth"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.Prefix == "" {
		cfg.Logging.Prefix = "cozyhearth"
	}

	// Simulation defaults
	if cfg.Simulation.DaysPerSeason == 0 {
		cfg.Simulation.DaysPerSeason = 30
	}
	if cfg.Simulation.TimeScale == 0 {
		cfg.Simulation.TimeScale = 60
	}
	if cfg.Simulation.StartHour == 0 {
		cfg.Simulation.StartHour = 6
	}
	if cfg.Simulation.StartDay == 0 {
		cfg.Simulation.StartDay = 1
	}
	if cfg.Simulation.StartSeason == "" {
		cfg.Simulation.StartSeason = "spring"
	}
	if cfg.Simulation.StartYear == 0 {
		cfg.Simulation.StartYear = 1
	}
	if cfg.Simulation.TickInterval == 0 {
		cfg.Simulation.TickInterval = 100 * time.Millisecond
	}
	if cfg.Simulation.DialogueSeed == 0 {
		cfg.Simulation.DialogueSeed = 1
	}
	if cfg.Simulation.PIDDir == "" {
		cfg.Simulation.PIDDir = os.TempDir()
	}

	// Save defaults
	if cfg.Save.Backend == "" {
		cfg.Save.Backend = "database"
	}
	if cfg.Save.Slot == "" {
		cfg.Save.Slot = "cozy_hearth_save"
	}
	if cfg.Save.Directory == "" {
		cfg.Save.Directory = filepath.Join(".", "saves")
	}
	if cfg.Save.AutosaveInterval == 0 {
		cfg.Save.AutosaveInterval = 5 * time.Minute
	}

	// Interaction defaults
	if cfg.Interaction.Dwell == 0 {
		cfg.Interaction.Dwell = 3 * time.Second
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
