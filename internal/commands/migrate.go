package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/pkg/database"
)

func newMigrateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back postgres schema migrations",
		Long:      "up applies every pending migration. down rolls back the most recent one.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(os.Stderr)

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.StorageDriver != config.StoragePostgres {
				return fmt.Errorf("migrations only apply to the %s driver, STORAGE_DRIVER is %s", config.StoragePostgres, cfg.StorageDriver)
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("PGSQL_URL must be set to run migrations")
			}

			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrationDirection(args[0]), logger)
		},
	}
}
