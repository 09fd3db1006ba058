package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// AccountReaderSvc defines read operations on the chart of accounts
type AccountReaderSvc interface {
	// GetAccount retrieves an account by its code.
	GetAccount(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts returns the whole chart sorted by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations on the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies a partial update. Changing the type of a referenced
	// account fails with apperrors.ErrAccountInUse.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount fails with apperrors.ErrAccountInUse when journal lines reference the account.
	DeleteAccount(ctx context.Context, code string, userID string) error

	// SeedDefaultChart creates every missing account of the configured starter chart
	// and returns the ones it created.
	SeedDefaultChart(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
