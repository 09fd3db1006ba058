package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	debug bool
}

func (o *globalOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "pos_backend",
		Short: "Point-of-sale backend with a double-entry ledger",
		Long: `pos_backend runs the point-of-sale API and its ledger tooling.

Configuration is read from the environment and an optional .env file.
STORAGE_DRIVER selects postgres (PGSQL_URL) or bolt (BOLT_PATH).

Example:
  pos_backend serve
  pos_backend migrate up
  pos_backend report trial-balance --as-of 2024-03-31`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newMigrateCommand(opts))
	rootCmd.AddCommand(newSeedCommand(opts))
	rootCmd.AddCommand(newReportCommand(opts))

	return rootCmd
}
