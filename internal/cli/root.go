package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/stockroom/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Overrides for config file values; applied only when the flag is set.
	File      string
	Backend   string
	Database  string
	RedisAddr string
	RedisKey  string

	// Populated by PersistentPreRunE.
	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the stockroom CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stockroom",
		Short: "stockroom - inventory record-keeper",
		Long: `Keep a catalog of stock items with quantities and unit prices.

The catalog lives in a CSV or JSON file by default, or in SQLite or Redis
when configured. Every change is validated and persisted atomically.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "path to settings file")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "catalog file (.csv or .json)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (file|sqlite|redis)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.RedisAddr, "redis-addr", "", "Redis server address")
	cmd.PersistentFlags().StringVar(&opts.RedisKey, "redis-key", "", "Redis hash key holding the catalog")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewAdjustCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewLowCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code.
// Errors already reported by a command are not printed again; anything else
// (bad flags, arguments or settings) is printed here and exits with
// ExitCommandError.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()

	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// setup loads the settings file, applies flag overrides and installs the logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	cfg, err := config.Load(o.ConfigPath, flags.Changed("config"))
	if err != nil {
		return err
	}
	if flags.Changed("file") {
		cfg.File = o.File
	}
	if flags.Changed("backend") {
		cfg.Backend = o.Backend
	}
	if flags.Changed("db") {
		cfg.Database = o.Database
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = o.RedisAddr
	}
	if flags.Changed("redis-key") {
		cfg.Redis.Key = o.RedisKey
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	o.Config = cfg

	level, _ := cfg.Level()
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	o.Logger = slog.New(handler)
	return nil
}

// logger returns the configured logger, or slog.Default() when setup has
// not run (commands executed without the root).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
