package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/queries"
)

// NewMarketCommand creates the market command with subcommands
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Buy and sell resources",
		Long: `Trade resources for gold at market price.

Buying costs the market price per unit; selling pays half of it.
Resources are named category.type, for example ingredients.flour.

Examples:
  cozyhearth market prices
  cozyhearth market buy ingredients.flour 5
  cozyhearth market sell materials.furniture 1`,
	}

	// Add subcommands
	cmd.AddCommand(newMarketPricesCommand())
	cmd.AddCommand(newMarketTradeCommand("buy", "Buy units of a resource"))
	cmd.AddCommand(newMarketTradeCommand("sell", "Sell units of a resource"))

	return cmd
}

// newMarketPricesCommand creates the market prices subcommand
func newMarketPricesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "List tradable resources with prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			resources, err := send[*queries.GetResourcesResponse](ctx, s.mediator, &queries.GetResourcesQuery{})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RESOURCE\tOWNED\tBUY\tSELL")
			for _, r := range resources.Resources {
				if !r.Tradable {
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\n", r.Key, r.Display, r.BuyPrice, r.SellPrice)
			}
			return w.Flush()
		},
	}
}

// newMarketTradeCommand creates the market buy or sell subcommand
func newMarketTradeCommand(side, short string) *cobra.Command {
	return &cobra.Command{
		Use:   side + " <resource> <quantity>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			var request mediator.Request = &commands.BuyResourceCommand{Resource: args[0], Quantity: quantity}
			if side == "sell" {
				request = &commands.SellResourceCommand{Resource: args[0], Quantity: quantity}
			}

			var trade *commands.TradeResponse
			err = saveAfter(ctx, s, func() error {
				trade, err = send[*commands.TradeResponse](ctx, s.mediator, request)
				return err
			})
			if err != nil {
				return err
			}

			verb := "Bought"
			if side == "sell" {
				verb = "Sold"
			}
			fmt.Printf("%s %.0f %s at %.1f gold each (total %.1f)\n", verb, trade.Quantity, trade.Resource, trade.UnitPrice, trade.Total)
			fmt.Printf("  Now holding %.0f, gold balance %.1f\n", trade.NewAmount, trade.GoldBalance)
			return nil
		},
	}
}
