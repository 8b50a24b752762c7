package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stockroom/internal/inventory"
)

// NewAdjustCommand creates the adjust command.
func NewAdjustCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust <sku> <delta>",
		Short: "Change an item's quantity by a signed amount",
		Long: `Add delta to an item's quantity.

A change that would make the quantity negative is rejected and the
stored quantity is left as it was.

Examples:
  stockroom adjust WIDGET 5
  stockroom adjust WIDGET -3`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjust(rootOpts, args[0], args[1], cmd)
		},
	}

	// Negative deltas must not be parsed as flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runAdjust(opts *RootOptions, sku, deltaArg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	delta, err := inventory.ParseDelta(deltaArg)
	if err != nil {
		return reportError(formatter, err)
	}

	cat, err := openCatalog(cmd.Context(), opts, true)
	if err != nil {
		return reportError(formatter, err)
	}
	defer cat.Close()

	item, err := cat.sys.AdjustQuantity(sku, delta)
	if err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(newItemView(item))
	}
	fmt.Fprintf(formatter.Writer, "✓ %s quantity is now %d\n", item.SKU, item.Quantity)
	return nil
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <sku>",
		Short: "Show one item",
		Long: `Show the quantity, unit price and stock value of one item.

Example:
  stockroom get WIDGET --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, sku string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := openCatalog(cmd.Context(), opts, false)
	if err != nil {
		return reportError(formatter, err)
	}
	defer cat.Close()

	item, err := cat.sys.GetItem(sku)
	if err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(newItemView(item))
	}
	w := formatter.Writer
	fmt.Fprintf(w, "SKU:        %s\n", item.SKU)
	fmt.Fprintf(w, "Quantity:   %d\n", item.Quantity)
	fmt.Fprintf(w, "Unit price: %s\n", inventory.FormatPrice(item.UnitPrice))
	fmt.Fprintf(w, "Value:      %s\n", inventory.FormatPrice(item.Value()))
	return nil
}
