package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

// NewCraftCommand creates the craft command with subcommands
func NewCraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "craft",
		Short: "List and craft recipes",
		Long: `Turn resources into products with the inn's recipes.

Crafting runs on real time and is not stored in saves, so "craft start"
works the batch to completion before saving. The game clock stands still
meanwhile unless --advance-clock is given.

Examples:
  cozyhearth craft list
  cozyhearth craft start bread --quantity 2`,
	}

	// Add subcommands
	cmd.AddCommand(newCraftListCommand())
	cmd.AddCommand(newCraftStartCommand())

	return cmd
}

// newCraftListCommand creates the craft list subcommand
func newCraftListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recipes the player can craft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := send[*queries.GetCraftableRecipesResponse](ctx, s.mediator, &queries.GetCraftableRecipesQuery{})
			if err != nil {
				return err
			}
			if len(result.Recipes) == 0 {
				fmt.Println("No recipes available with the current skills and stock")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RECIPE\tNAME\tINPUTS\tOUTPUTS\tMINUTES")
			for _, r := range result.Recipes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\n",
					r.ID, r.Name, formatRequirements(r.Inputs), formatRequirements(r.Outputs), r.CraftingTimeMinutes)
			}
			return w.Flush()
		},
	}
}

// newCraftStartCommand creates the craft start subcommand
func newCraftStartCommand() *cobra.Command {
	var (
		quantity     int
		advanceClock bool
	)

	cmd := &cobra.Command{
		Use:   "start <recipe>",
		Short: "Craft batches of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			started, err := send[*commands.StartCraftingResponse](ctx, s.mediator,
				&commands.StartCraftingCommand{RecipeID: args[0], Quantity: quantity})
			if err != nil {
				return err
			}
			process := started.Process
			fmt.Printf("Started %d x %s (%s of work)\n", process.Quantity, process.RecipeName,
				time.Duration(process.TimeRemainingSeconds*float64(time.Second)))

			var advanced *commands.AdvanceTimeResponse
			err = saveAfter(ctx, s, func() error {
				advanced, err = send[*commands.AdvanceTimeResponse](ctx, s.mediator, &commands.AdvanceTimeCommand{
					Duration:  time.Duration(process.TimeRemainingSeconds * float64(time.Second)),
					Step:      time.Second,
					HoldClock: !advanceClock,
				})
				return err
			})
			if err != nil {
				return err
			}

			fmt.Printf("Completed %d process(es); now %s, %s\n",
				advanced.Completed, advanced.Info.DateString, advanced.Info.TimeString)
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Number of batches")
	cmd.Flags().BoolVar(&advanceClock, "advance-clock", false, "Let the game clock run while crafting")

	return cmd
}

func formatRequirements(reqs resource.Requirements) string {
	if len(reqs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(reqs))
	for key, amount := range reqs {
		parts = append(parts, fmt.Sprintf("%g %s", amount, key))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
