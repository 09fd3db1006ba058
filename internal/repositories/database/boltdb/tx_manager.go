package boltdb

import (
	"context"

	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

// boltTxManager runs units of work inside one writable bbolt transaction.
// bbolt serializes writers, so the transaction also acts as the stock lock.
type boltTxManager struct {
	boltRepository
}

var _ portsrepo.TransactionManager = (*boltTxManager)(nil)

func (m *boltTxManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	if m.tx != nil {
		return fn(ctx, newProvider(m.store, m.tx))
	}
	return mapError(m.store.db.Update(func(tx *bolt.Tx) error {
		return fn(ctx, newProvider(m.store, tx))
	}))
}

// NewRepositoryProvider wires every repository against the store.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return newProvider(s, nil)
}

func newProvider(s *Store, tx *bolt.Tx) portsrepo.RepositoryProvider {
	base := boltRepository{store: s, tx: tx}
	return portsrepo.RepositoryProvider{
		AccountRepo:  &accountRepository{base},
		JournalRepo:  &journalRepository{base},
		ProductRepo:  &productRepository{base},
		EmployeeRepo: &employeeRepository{base},
		JobRepo:      &jobRepository{base},
		SaleRepo:     &saleRepository{base},
		CustomerRepo: &customerRepository{base},
		SettingsRepo: &settingsRepository{base},
		TxManager:    &boltTxManager{base},
	}
}
