package config

import "time"

// SimulationConfig holds the new-game calendar and tick loop settings
type SimulationConfig struct {
	// Days in each season
	DaysPerSeason int `mapstructure:"days_per_season" validate:"min=1"`

	// Game minutes per real second
	TimeScale float64 `mapstructure:"time_scale" validate:"gt=0"`

	// New-game calendar
	StartHour   int    `mapstructure:"start_hour" validate:"min=0,max=23"`
	StartDay    int    `mapstructure:"start_day" validate:"min=1"`
	StartSeason string `mapstructure:"start_season" validate:"season"`
	StartYear   int    `mapstructure:"start_year" validate:"min=1"`

	// Real time between ticks of the run loop
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"min=1ms"`

	// Seed for dialogue line selection
	DialogueSeed uint64 `mapstructure:"dialogue_seed"`

	// Directory holding one PID file per running slot
	PIDDir string `mapstructure:"pid_dir" validate:"required"`
}

// SaveConfig holds save storage configuration
type SaveConfig struct {
	// Storage backend: database or file
	Backend string `mapstructure:"backend" validate:"required,oneof=database file"`

	// Default save slot
	Slot string `mapstructure:"slot" validate:"required,slot"`

	// Directory for the file backend
	Directory string `mapstructure:"directory" validate:"required_if=Backend file"`

	// Interval between autosaves while running
	AutosaveInterval time.Duration `mapstructure:"autosave_interval" validate:"min=1s"`
}

// InteractionConfig holds interaction queue tuning
type InteractionConfig struct {
	// Real time an interaction stays active
	Dwell time.Duration `mapstructure:"dwell" validate:"min=0"`

	// Records kept per target; 0 selects the default, negative keeps all
	HistoryLimit int `mapstructure:"history_limit"`
}
