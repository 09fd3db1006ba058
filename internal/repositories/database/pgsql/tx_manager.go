package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxTxManager runs units of work in a single database transaction. A manager
// bound to an open transaction joins it instead of nesting.
type pgxTxManager struct {
	BaseRepository
	tx pgx.Tx
}

func newPgxTxManager(pool *pgxpool.Pool, tx pgx.Tx) portsrepo.TransactionManager {
	return &pgxTxManager{BaseRepository: newBaseRepository(pool, nil), tx: tx}
}

var _ portsrepo.TransactionManager = (*pgxTxManager)(nil)

func (m *pgxTxManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	if m.tx != nil {
		return fn(ctx, newProvider(m.Pool, m.tx))
	}

	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(ctx, tx)

	if err := fn(ctx, newProvider(m.Pool, tx)); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
