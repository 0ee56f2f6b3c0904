package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Cozy Hearth configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CH_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default slot) are stored in ~/.cozyhearth/config.json

Examples:
  cozyhearth config show
  cozyhearth config set-slot winter_run
  cozyhearth config clear-slot`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetSlotCommand())
	cmd.AddCommand(newConfigClearSlotCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  cozyhearth config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Println("Cozy Hearth Configuration")
			fmt.Println("=========================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultSlot != "" {
				fmt.Printf("  Default Slot:     %s\n", userCfg.DefaultSlot)
			} else {
				fmt.Printf("  Default Slot:     (not set)\n")
			}

			fmt.Println("\nSaves:")
			fmt.Printf("  Backend:          %s\n", cfg.Save.Backend)
			fmt.Printf("  Slot:             %s\n", cfg.Save.Slot)
			if cfg.Save.Backend == "file" {
				fmt.Printf("  Directory:        %s\n", cfg.Save.Directory)
			}
			fmt.Printf("  Autosave:         %s\n", cfg.Save.AutosaveInterval)

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			fmt.Println("\nSimulation:")
			fmt.Printf("  Days per season:  %d\n", cfg.Simulation.DaysPerSeason)
			fmt.Printf("  Time scale:       %.1f\n", cfg.Simulation.TimeScale)
			fmt.Printf("  Start:            %02d:00, day %d of %s, year %d\n",
				cfg.Simulation.StartHour, cfg.Simulation.StartDay, cfg.Simulation.StartSeason, cfg.Simulation.StartYear)
			fmt.Printf("  Tick interval:    %s\n", cfg.Simulation.TickInterval)
			fmt.Printf("  Interaction:      %s dwell, %d history per target\n", cfg.Interaction.Dwell, cfg.Interaction.HistoryLimit)

			fmt.Println("\nMetrics:")
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			} else {
				fmt.Printf("  Endpoint:         (disabled)\n")
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetSlotCommand creates the config set-slot subcommand
func newConfigSetSlotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-slot <slot>",
		Short: "Set default save slot",
		Long: `Set the save slot used when --slot is not given.

Example:
  cozyhearth config set-slot winter_run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultSlot(args[0]); err != nil {
				return fmt.Errorf("failed to set default slot: %w", err)
			}

			fmt.Println("✓ Default slot set successfully")
			fmt.Printf("  Slot: %s\n", args[0])
			fmt.Printf("\nOverride with the --slot flag.\n")

			return nil
		},
	}

	return cmd
}

// newConfigClearSlotCommand creates the config clear-slot subcommand
func newConfigClearSlotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-slot",
		Short: "Clear default save slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultSlot(); err != nil {
				return fmt.Errorf("failed to clear default slot: %w", err)
			}

			fmt.Println("✓ Default slot cleared")
			fmt.Println("\nCommands now use save.slot from the configuration.")

			return nil
		},
	}

	return cmd
}

// maskPassword masks passwords in connection strings for display. The
// userinfo is replaced in the raw string so the mask is not percent-encoded.
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}

	start := strings.Index(raw, "://")
	if start < 0 {
		return raw
	}
	start += len("://")
	authority := raw[start:]
	if end := strings.IndexAny(authority, "/?#"); end >= 0 {
		authority = authority[:end]
	}
	at := strings.LastIndex(authority, "@")
	colon := strings.Index(authority, ":")
	if at < 0 || colon < 0 || colon > at {
		return raw
	}
	return raw[:start+colon+1] + "****" + raw[start+at:]
}
