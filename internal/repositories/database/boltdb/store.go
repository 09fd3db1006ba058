package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// Bucket names.
const (
	BucketAccounts       = "accounts"
	BucketJournalEntries = "journal_entries"
	BucketJournalLines   = "journal_lines"
	BucketProducts       = "products"
	BucketEmployees      = "employees"
	BucketJobs           = "jobs"
	BucketSales          = "sales"
	BucketCustomers      = "customers"
	BucketSettings       = "app_settings"
)

var allBuckets = []string{
	BucketAccounts,
	BucketJournalEntries,
	BucketJournalLines,
	BucketProducts,
	BucketEmployees,
	BucketJobs,
	BucketSales,
	BucketCustomers,
	BucketSettings,
}

const settingsKey = "settings"

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and initializes buckets. timeout
// bounds the wait for the file lock held by another process.
func Open(path string, timeout time.Duration) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, mapError(fmt.Errorf("failed to open database: %w", err))
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// boltRepository binds a repository to the store, or to an open writable
// transaction when it runs inside a unit of work.
type boltRepository struct {
	store *Store
	tx    *bolt.Tx
}

func (r boltRepository) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	return mapError(r.store.db.View(fn))
}

func (r boltRepository) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	return mapError(r.store.db.Update(fn))
}

// mapError translates storage failures into application error categories.
// Application errors returned from inside a transaction pass through.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, berrors.ErrTimeout),
		errors.Is(err, berrors.ErrDatabaseNotOpen),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	return err
}

func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", name)
	}
	return b, nil
}

func getJSON[T any](b *bolt.Bucket, key string) (T, error) {
	var v T
	data := b.Get([]byte(key))
	if data == nil {
		return v, apperrors.ErrNotFound
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return v, nil
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put([]byte(key), data)
}

func listJSON[T any](b *bolt.Bucket, filter func(T) bool) ([]T, error) {
	results := []T{}
	err := b.ForEach(func(k, data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", k, err)
		}
		if filter == nil || filter(v) {
			results = append(results, v)
		}
		return nil
	})
	return results, err
}

func exists(b *bolt.Bucket, key string) bool {
	return b.Get([]byte(key)) != nil
}
