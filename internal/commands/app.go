package commands

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/pkg/database"
)

// application bundles what every command needs once storage is open.
type application struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	close    func()
}

// openApplication loads configuration, optionally migrates the postgres
// schema, opens storage and builds the services.
func openApplication(ctx context.Context, logger *slog.Logger, migrate bool) (*application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	chart, err := config.LoadChart(cfg.COASeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed chart: %w", err)
	}

	if migrate && cfg.StorageDriver == config.StoragePostgres {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
			return nil, err
		}
	}

	repos, closeFn, err := database.OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		cfg:      cfg,
		logger:   logger,
		services: services.NewServiceContainer(cfg, repos, chart),
		close:    closeFn,
	}, nil
}
