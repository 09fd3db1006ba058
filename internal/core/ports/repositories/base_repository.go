package repositories

import "context"

// TxFunc is the body of a unit of work. repos is bound to the open transaction.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager runs a unit of work atomically. If fn returns an error
// nothing it wrote is persisted. Calling WithinTransaction on a provider that
// is already bound to a transaction joins that transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
