package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const userConfigDirName = ".cozyhearth"

// UserConfig holds per-user preferences kept in ~/.cozyhearth/config.json
type UserConfig struct {
	// Slot used when --slot is not given
	DefaultSlot string `json:"default_slot,omitempty"`
}

// UserConfigHandler reads and writes the user preferences file
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for the file in the user's home directory
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, userConfigDirName, "config.json")), nil
}

// NewUserConfigHandlerAt creates a handler for an explicit config file path
func NewUserConfigHandlerAt(configPath string) *UserConfigHandler {
	return &UserConfigHandler{configPath: configPath}
}

// Load reads the user config. A missing file is an empty config.
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config %s: %w", h.configPath, err)
	}
	return &cfg, nil
}

// Save writes the user config, creating its directory when needed
func (h *UserConfigHandler) Save(cfg *UserConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(h.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	return nil
}

func (h *UserConfigHandler) update(mutate func(*UserConfig)) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}
	mutate(cfg)
	return h.Save(cfg)
}

// SetDefaultSlot remembers slot as the default save slot
func (h *UserConfigHandler) SetDefaultSlot(slot string) error {
	if !IsValidSlot(slot) {
		return fmt.Errorf("invalid slot name %q: use letters, digits, '_' or '-'", slot)
	}
	return h.update(func(cfg *UserConfig) { cfg.DefaultSlot = slot })
}

// ClearDefaultSlot forgets the default save slot
func (h *UserConfigHandler) ClearDefaultSlot() error {
	return h.update(func(cfg *UserConfig) { cfg.DefaultSlot = "" })
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
