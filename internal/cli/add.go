package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stockroom/internal/inventory"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Price string // unit price, parsed with inventory.ParsePrice
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <sku> <quantity>",
		Short: "Add a new item to the catalog",
		Long: `Add a new item with an initial quantity and unit price.

Fails if the SKU already exists. Quantity and price must be plain
non-negative decimal numbers.

Examples:
  stockroom add WIDGET 10 --price 2.50
  stockroom add BOLT 120 --price 0.05 --file parts.json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Price, "price", "p", "0", "unit price")

	return cmd
}

func runAdd(opts *AddOptions, sku, quantityArg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	quantity, err := inventory.ParseQuantity(quantityArg)
	if err != nil {
		return reportError(formatter, err)
	}
	price, err := inventory.ParsePrice(opts.Price)
	if err != nil {
		return reportError(formatter, err)
	}

	cat, err := openCatalog(cmd.Context(), opts.RootOptions, true)
	if err != nil {
		return reportError(formatter, err)
	}
	defer cat.Close()

	item, err := cat.sys.AddItem(sku, quantity, price)
	if err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(newItemView(item))
	}
	fmt.Fprintf(formatter.Writer, "✓ Added %s (quantity %d, unit price %s)\n",
		item.SKU, item.Quantity, inventory.FormatPrice(item.UnitPrice))
	return nil
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <sku>",
		Short: "Remove an item from the catalog",
		Long: `Remove an item from the catalog.

Fails with exit code 4 if the SKU is not in the catalog.

Example:
  stockroom remove WIDGET`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, sku string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := openCatalog(cmd.Context(), opts, true)
	if err != nil {
		return reportError(formatter, err)
	}
	defer cat.Close()

	if err := cat.sys.RemoveItem(sku); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"removed": sku})
	}
	fmt.Fprintf(formatter.Writer, "✓ Removed %s\n", sku)
	return nil
}
