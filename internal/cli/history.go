package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/stockroom/internal/config"
	"github.com/roach88/stockroom/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the save history of a SQLite catalog",
		Long: `Show one line per save recorded in the SQLite database, oldest first.

Only available with the sqlite backend.

Example:
  stockroom history --backend sqlite --db ./stockroom.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Config.Backend != config.BackendSQLite {
		return reportError(formatter, NewExitError(ExitCommandError,
			fmt.Sprintf("history requires the sqlite backend, got %q", opts.Config.Backend)))
	}

	st, err := store.Open(opts.Config.Database)
	if err != nil {
		return reportError(formatter, WrapExitError(ExitPersistence, "failed to open database", err))
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.logger().Error("error closing database", "error", closeErr)
		}
	}()

	snaps, err := st.Snapshots(cmd.Context())
	if err != nil {
		return reportError(formatter, WrapExitError(ExitPersistence, "failed to read history", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(snaps)
	}

	if len(snaps) == 0 {
		fmt.Fprintln(formatter.Writer, "No saves recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tITEMS\tQUANTITY")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", s.Seq, s.ID, s.ItemCount, s.TotalQuantity)
	}
	return tw.Flush()
}
