package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
)

// NewSavesCommand creates the saves command with subcommands
func NewSavesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
		Long: `List, delete, export and import save slots.

Saves live in the configured backend (save.backend: database or file).

Examples:
  cozyhearth saves list
  cozyhearth saves export --out backup.json
  cozyhearth saves import backup.json --slot restored
  cozyhearth saves delete old_slot`,
	}

	// Add subcommands
	cmd.AddCommand(newSavesListCommand())
	cmd.AddCommand(newSavesDeleteCommand())
	cmd.AddCommand(newSavesExportCommand())
	cmd.AddCommand(newSavesImportCommand())

	return cmd
}

// newSavesListCommand creates the saves list subcommand
func newSavesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{fresh: true})
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := send[*queries.ListSavesResponse](ctx, s.mediator, &queries.ListSavesQuery{})
			if err != nil {
				return err
			}
			if len(result.Saves) == 0 {
				fmt.Println("No saves found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tSAVED AT\tSIZE\t")
			for _, save := range result.Saves {
				marker := ""
				if save.Slot == s.slot {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%d B\t%s\n", save.Slot, save.SavedAt.Local().Format("2006-01-02 15:04:05"), save.Size, marker)
			}
			return w.Flush()
		},
	}
}

// newSavesDeleteCommand creates the saves delete subcommand
func newSavesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{fresh: true})
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := send[*commands.DeleteSaveResponse](ctx, s.mediator, &commands.DeleteSaveCommand{Slot: args[0]})
			if err != nil {
				return err
			}

			fmt.Printf("Deleted save %s\n", result.Slot)
			return nil
		},
	}
}

// newSavesExportCommand creates the saves export subcommand
func newSavesExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected slot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := send[*queries.ExportSaveResponse](ctx, s.mediator, &queries.ExportSaveQuery{})
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Println(string(result.Data))
				return nil
			}
			if err := os.WriteFile(outPath, result.Data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Exported slot %s to %s\n", s.slot, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}

// newSavesImportCommand creates the saves import subcommand
func newSavesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import an exported save into the selected slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read save file: %w", err)
			}

			ctx := context.Background()
			s, err := openSession(ctx, sessionOptions{fresh: true})
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := send[*commands.ImportSaveResponse](ctx, s.mediator, &commands.ImportSaveCommand{Data: data})
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s into slot %s\n", args[0], s.slot)
			fmt.Printf("  %s, %s\n", result.Info.DateString, result.Info.TimeString)
			return nil
		},
	}
}
