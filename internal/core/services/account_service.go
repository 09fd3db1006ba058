package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

const accountListCacheKey = "accounts:all"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	seedChart []domain.Account
	cache     *cache.Cache
}

// NewAccountService creates the chart of accounts service. seedChart is the
// chart SeedDefaultChart creates; nil means the built-in default chart.
func NewAccountService(repos portsrepo.RepositoryProvider, seedChart []domain.Account, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		BaseService: newBaseService(options...),
		repos:       repos,
		seedChart:   seedChart,
	}
	if svc.seedChart == nil {
		svc.seedChart = domain.DefaultChart()
	}
	if svc.CacheTTL > 0 {
		svc.cache = cache.New(svc.CacheTTL, 2*svc.CacheTTL)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) invalidate() {
	if s.cache != nil {
		s.cache.Delete(accountListCacheKey)
	}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	account, err := domain.NewAccount(req.Code, req.Name, req.AccountType, req.Description)
	if err != nil {
		return nil, err
	}
	account.AuditFields = domain.NewAuditFields(userID, s.now())

	err = s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		_, err := repos.AccountRepo.FindAccountByCode(ctx, account.Code)
		if err == nil {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountCode, account.Code)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check account code: %w", err)
		}
		return repos.AccountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create account", slog.String("account_code", account.Code))
		}
		return nil, err
	}
	s.invalidate()

	s.LogInfo(ctx, "Account created", slog.String("account_code", account.Code), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	account, err := s.repos.AccountRepo.FindAccountByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_code", code))
		}
		return nil, PersistenceError(err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(accountListCacheKey); ok {
			accounts := cached.([]domain.Account)
			return append([]domain.Account(nil), accounts...), nil
		}
	}

	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	accounts, err := s.repos.AccountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, PersistenceError(fmt.Errorf("failed to list accounts: %w", err))
	}
	if s.cache != nil {
		s.cache.SetDefault(accountListCacheKey, append([]domain.Account(nil), accounts...))
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	var updated domain.Account
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		existing, err := repos.AccountRepo.FindAccountByCode(ctx, code)
		if err != nil {
			return err
		}
		updated = *existing

		if req.Name != nil {
			updated.Name = strings.TrimSpace(*req.Name)
			if updated.Name == "" {
				return fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
			}
		}
		if req.Description != nil {
			updated.Description = strings.TrimSpace(*req.Description)
		}
		if req.AccountType != nil {
			newType := domain.AccountType(strings.ToUpper(string(*req.AccountType)))
			if !newType.IsValid() {
				return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, newType)
			}
			if newType != existing.AccountType {
				used, err := repos.JournalRepo.CountLinesByAccount(ctx, code)
				if err != nil {
					return fmt.Errorf("failed to check account usage: %w", err)
				}
				if used > 0 {
					return fmt.Errorf("%w: cannot change the type of %s, %d lines reference it", apperrors.ErrAccountInUse, code, used)
				}
				updated.AccountType = newType
			}
		}

		updated.Touch(userID, s.now())
		return repos.AccountRepo.UpdateAccount(ctx, updated)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_code", code))
		}
		return nil, err
	}
	s.invalidate()

	s.LogInfo(ctx, "Account updated", slog.String("account_code", code))
	return &updated, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, code string, userID string) error {
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if _, err := repos.AccountRepo.FindAccountByCode(ctx, code); err != nil {
			return err
		}
		used, err := repos.JournalRepo.CountLinesByAccount(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to check account usage: %w", err)
		}
		if used > 0 {
			return fmt.Errorf("%w: %s is referenced by %d lines", apperrors.ErrAccountInUse, code, used)
		}
		return repos.AccountRepo.DeleteAccount(ctx, code)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_code", code))
		}
		return err
	}
	s.invalidate()

	s.LogInfo(ctx, "Account deleted", slog.String("account_code", code), slog.String("deleted_by", userID))
	return nil
}

func (s *accountService) SeedDefaultChart(ctx context.Context, userID string) ([]domain.Account, error) {
	var created []domain.Account
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		created = created[:0]
		existing, err := repos.AccountRepo.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		have := make(map[string]struct{}, len(existing))
		for _, acc := range existing {
			have[acc.Code] = struct{}{}
		}

		now := s.now()
		for _, tmpl := range s.seedChart {
			if _, ok := have[tmpl.Code]; ok {
				continue
			}
			acc, err := domain.NewAccount(tmpl.Code, tmpl.Name, tmpl.AccountType, tmpl.Description)
			if err != nil {
				return fmt.Errorf("invalid seed account %q: %w", tmpl.Code, err)
			}
			acc.AuditFields = domain.NewAuditFields(userID, now)
			if err := repos.AccountRepo.SaveAccount(ctx, acc); err != nil {
				return err
			}
			have[acc.Code] = struct{}{}
			created = append(created, acc)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts")
		return nil, err
	}
	s.invalidate()

	s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("created", len(created)))
	return created, nil
}
