package database

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/repositories/database/boltdb"
	"github.com/SscSPs/pos_ledger/internal/repositories/database/pgsql"
)

// OpenRepositories connects the configured storage driver and returns the
// repository provider with a function releasing the underlying handle.
func OpenRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageBolt:
		store, err := boltdb.Open(cfg.BoltPath, cfg.PersistenceTimeout)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		logger.Info("Bolt store opened.", slog.String("path", store.Path()))
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing bolt store", slog.String("error", err.Error()))
			}
		}
		return boltdb.NewRepositoryProvider(store), closeFn, nil
	default:
		pool, err := NewPgxPool(ctx, cfg.DatabaseURL, cfg.PersistenceTimeout, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { ClosePgxPool(pool) }, nil
	}
}
