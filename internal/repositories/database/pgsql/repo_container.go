package pgsql

import (
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository against the connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newProvider(dbPool, nil)
}

// newProvider binds the repositories to tx when it is set.
func newProvider(pool *pgxpool.Pool, tx pgx.Tx) portsrepo.RepositoryProvider {
	var db DBTX = pool
	if tx != nil {
		db = tx
	}
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(pool, db),
		JournalRepo:  newPgxJournalRepository(pool, db),
		ProductRepo:  newPgxProductRepository(pool, db),
		EmployeeRepo: newPgxEmployeeRepository(pool, db),
		JobRepo:      newPgxJobRepository(pool, db),
		SaleRepo:     newPgxSaleRepository(pool, db),
		CustomerRepo: newPgxCustomerRepository(pool, db),
		SettingsRepo: newPgxSettingsRepository(pool, db),
		TxManager:    newPgxTxManager(pool, tx),
	}
}
