package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
)

// NewTimeCommand creates the time command with subcommands
func NewTimeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Control the game clock",
		Long: `Move the game clock of the selected slot.

Examples:
  cozyhearth time skip 20
  cozyhearth time scale 120
  cozyhearth time advance 90s`,
	}

	// Add subcommands
	cmd.AddCommand(newTimeSkipCommand())
	cmd.AddCommand(newTimeScaleCommand())
	cmd.AddCommand(newTimeAdvanceCommand())

	return cmd
}

// newTimeSkipCommand creates the time skip subcommand
func newTimeSkipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <hour>",
		Short: "Skip forward to the next occurrence of an hour (0-23)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid hour %q: %w", args[0], err)
			}
			return runTimeCommand(&commands.SkipToHourCommand{Hour: hour})
		},
	}
}

// newTimeScaleCommand creates the time scale subcommand
func newTimeScaleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scale <game-minutes-per-second>",
		Short: "Set how fast the game clock runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid time scale %q: %w", args[0], err)
			}
			return runTimeCommand(&commands.SetTimeScaleCommand{Scale: scale})
		},
	}
}

// newTimeAdvanceCommand creates the time advance subcommand
func newTimeAdvanceCommand() *cobra.Command {
	var step time.Duration

	cmd := &cobra.Command{
		Use:   "advance <duration>",
		Short: "Simulate a span of real time without waiting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[0], err)
			}

			ctx := context.Background()
			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			var advanced *commands.AdvanceTimeResponse
			err = saveAfter(ctx, s, func() error {
				advanced, err = send[*commands.AdvanceTimeResponse](ctx, s.mediator,
					&commands.AdvanceTimeCommand{Duration: duration, Step: step})
				return err
			})
			if err != nil {
				return err
			}

			fmt.Printf("Advanced %d ticks, %.0f game minutes, %d crafting process(es) completed\n",
				advanced.Ticks, advanced.GameMinutes, advanced.Completed)
			printTimeInfo(advanced.Info)
			return nil
		},
	}

	cmd.Flags().DurationVar(&step, "step", commands.DefaultAdvanceStep, "Real time per tick")

	return cmd
}

func runTimeCommand(request mediator.Request) error {
	ctx := context.Background()
	s, err := openSession(ctx, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	var result *commands.TimeResponse
	err = saveAfter(ctx, s, func() error {
		result, err = send[*commands.TimeResponse](ctx, s.mediator, request)
		return err
	})
	if err != nil {
		return err
	}

	printTimeInfo(result.Info)
	return nil
}
