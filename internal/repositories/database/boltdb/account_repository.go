package boltdb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	bolt "go.etcd.io/bbolt"
)

type accountRepository struct {
	boltRepository
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}
		if exists(b, account.Code) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountCode, account.Code)
		}
		return putJSON(b, account.Code, mapping.ToModelAccount(account))
	})
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}
		if !exists(b, account.Code) {
			return apperrors.ErrNotFound
		}
		return putJSON(b, account.Code, mapping.ToModelAccount(account))
	})
}

// DeleteAccount removes an account that no journal line references.
func (r *accountRepository) DeleteAccount(ctx context.Context, code string) error {
	return r.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}
		if !exists(b, code) {
			return apperrors.ErrNotFound
		}
		count, err := countLines(tx, code)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountInUse, code)
		}
		return b.Delete([]byte(code))
	})
}

func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	var account domain.Account
	err := r.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}
		m, err := getJSON[models.Account](b, code)
		if err != nil {
			return err
		}
		account = mapping.ToDomainAccount(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(codes))
	err := r.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}
		for _, code := range codes {
			m, err := getJSON[models.Account](b, code)
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			result[code] = mapping.ToDomainAccount(m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListAccounts returns the chart ordered by code. Keys iterate in byte order.
func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}
		rows, err := listJSON[models.Account](b, nil)
		if err != nil {
			return err
		}
		accounts = make([]domain.Account, len(rows))
		for i, m := range rows {
			accounts[i] = mapping.ToDomainAccount(m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}
