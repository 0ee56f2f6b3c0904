package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	slotName   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cozyhearth",
		Short: "Cozy Hearth - run and manage inn simulations",
		Long: `Cozy Hearth runs the inn simulation headless and manages its save slots.

One-shot commands load the selected slot, apply a change and save it again.
The run command keeps the simulation ticking and autosaves on an interval.

Examples:
  cozyhearth new
  cozyhearth run --duration 10m
  cozyhearth status
  cozyhearth market buy ingredients.flour 5
  cozyhearth craft start bread --quantity 2
  cozyhearth time skip 18
  cozyhearth interact npc merchant dialog
  cozyhearth saves list`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/cozyhearth)")
	rootCmd.PersistentFlags().StringVar(&slotName, "slot", "",
		"Save slot (default: user config, then save.slot)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewNewCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewCraftCommand())
	rootCmd.AddCommand(NewTimeCommand())
	rootCmd.AddCommand(NewInteractCommand())
	rootCmd.AddCommand(NewSavesCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
