package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game in the selected slot",
		Long: `Start a new game and save it to the selected slot.

An existing save is kept unless --force is given.

Examples:
  cozyhearth new
  cozyhearth new --slot winter_run --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{fresh: true})
			if err != nil {
				return err
			}
			defer s.Close()

			if !force {
				if _, err := s.store.Read(ctx, s.slot); err == nil {
					return fmt.Errorf("slot %q already has a save: use --force to replace it", s.slot)
				}
			}

			started, err := send[*commands.NewGameResponse](ctx, s.mediator, &commands.NewGameCommand{})
			if err != nil {
				return err
			}
			saved, err := s.save(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("New game started in slot %s\n", saved.Slot)
			fmt.Printf("  %s, %s\n", started.Info.DateString, started.Info.TimeString)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing save")

	return cmd
}
