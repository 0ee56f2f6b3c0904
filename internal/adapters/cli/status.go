package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the clock, resources and player of a save",
		Long: `Show the current state of the selected save slot.

Examples:
  cozyhearth status
  cozyhearth status --category ingredients --category currency`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			timeInfo, err := send[*queries.GetTimeInfoResponse](ctx, s.mediator, &queries.GetTimeInfoQuery{})
			if err != nil {
				return err
			}
			resources, err := send[*queries.GetResourcesResponse](ctx, s.mediator, &queries.GetResourcesQuery{Categories: categories})
			if err != nil {
				return err
			}

			p := s.engine.Player()
			fmt.Printf("\n=== %s (slot %s) ===\n", p.Name, s.slot)
			printTimeInfo(timeInfo.Info)

			fmt.Println("\nSkills:")
			for _, name := range sortedKeys(p.Skills) {
				fmt.Printf("  %-12s %d\n", name, p.Skills[name])
			}

			fmt.Println("\nResources:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "  RESOURCE\tAMOUNT\tLIMIT")
			for _, r := range resources.Resources {
				fmt.Fprintf(w, "  %s\t%d\t%.0f\n", r.Key, r.Display, r.Limit)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "Only show these resource categories")

	return cmd
}

func printTimeInfo(info gametime.TimeInfo) {
	state := "running"
	if info.Paused {
		state = "paused"
	}
	period := "night"
	if info.IsDayTime {
		period = "day"
	}
	fmt.Printf("Time:       %s (%s)\n", info.TimeString, period)
	fmt.Printf("Date:       %s\n", info.DateString)
	fmt.Printf("Time scale: %.1f game minutes per second (%s)\n", info.TimeScale, state)
}
