package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/stockroom/internal/inventory"
)

// ListResult is the JSON payload of the list and low commands.
type ListResult struct {
	Items      []ItemView `json:"items"`
	Count      int        `json:"count"`
	TotalValue string     `json:"total_value,omitempty"`
	Threshold  *int       `json:"threshold,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every item in the catalog",
		Long: `List every item ordered by SKU, with the total stock value.

Example:
  stockroom list --file inventory.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := openCatalog(cmd.Context(), opts, false)
	if err != nil {
		return reportError(formatter, err)
	}
	defer cat.Close()

	items := slices.Collect(cat.sys.ListItems())
	total := inventory.FormatPrice(cat.sys.TotalValue())

	if formatter.Format == "json" {
		return formatter.Success(ListResult{
			Items:      newItemViews(items),
			Count:      len(items),
			TotalValue: total,
		})
	}

	if len(items) == 0 {
		fmt.Fprintln(formatter.Writer, "Catalog is empty.")
		return nil
	}
	writeItemTable(formatter.Writer, items)
	fmt.Fprintf(formatter.Writer, "\n%d item(s), total value %s\n", len(items), total)
	return nil
}

// LowOptions holds flags for the low command.
type LowOptions struct {
	*RootOptions
	Threshold int
}

// NewLowCommand creates the low command.
func NewLowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items at or below a stock threshold",
		Long: `List items whose quantity is at or below the threshold.

The threshold defaults to low_stock_threshold from the settings file (5).

Examples:
  stockroom low
  stockroom low --threshold 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				opts.Threshold = opts.Config.LowStockThreshold
			}
			return runLow(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Threshold, "threshold", "t", 0, "stock threshold (default from settings)")

	return cmd
}

func runLow(opts *LowOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := openCatalog(cmd.Context(), opts.RootOptions, false)
	if err != nil {
		return reportError(formatter, err)
	}
	defer cat.Close()

	items, err := cat.sys.LowStock(opts.Threshold)
	if err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		threshold := opts.Threshold
		return formatter.Success(ListResult{
			Items:     newItemViews(items),
			Count:     len(items),
			Threshold: &threshold,
		})
	}

	if len(items) == 0 {
		fmt.Fprintf(formatter.Writer, "No items at or below %d.\n", opts.Threshold)
		return nil
	}
	writeItemTable(formatter.Writer, items)
	fmt.Fprintf(formatter.Writer, "\n%d item(s) at or below %d\n", len(items), opts.Threshold)
	return nil
}

func writeItemTable(w io.Writer, items []inventory.Item) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tQUANTITY\tUNIT PRICE\tVALUE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			it.SKU, it.Quantity, inventory.FormatPrice(it.UnitPrice), inventory.FormatPrice(it.Value()))
	}
	tw.Flush()
}
