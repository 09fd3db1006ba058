package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

type expenseService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	journal portssvc.JournalWriterSvc
}

// NewExpenseService creates the operating expense service.
func NewExpenseService(repos portsrepo.RepositoryProvider, journal portssvc.JournalWriterSvc, options ...ServiceOption) portssvc.ExpenseSvc {
	return &expenseService{
		BaseService: newBaseService(options...),
		repos:       repos,
		journal:     journal,
	}
}

var _ portssvc.ExpenseSvc = (*expenseService)(nil)

// RecordExpense posts Dr expense account / Cr payment account.
func (s *expenseService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, userID string) (*domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.AccountCode)
	if code == "" {
		code = s.Accounts.OperatingExpense
	}
	method := domain.ParsePaymentMethod(req.PaymentMethod)

	var posted *domain.JournalEntry
	err = s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		account, err := repos.AccountRepo.FindAccountByCode(ctx, code)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, code)
		}
		if err != nil {
			return err
		}
		if account.AccountType != domain.Expense {
			return fmt.Errorf("%w: account %s is %s, not an expense account", apperrors.ErrValidation, code, account.AccountType)
		}

		posted, err = s.journal.PostEntryInTx(ctx, repos, domain.JournalEntry{
			Date:        date,
			Description: strings.TrimSpace(req.Description),
			Reference:   domain.NewReference(domain.ExpenseRefPrefix, s.now()),
			Lines: []domain.JournalLine{
				domain.DebitLine(code, req.Amount),
				domain.CreditLine(s.Accounts.ForPaymentMethod(method), req.Amount),
			},
		}, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to record expense", slog.String("account_code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded", slog.String("entry_id", posted.EntryID), slog.String("amount", req.Amount.String()))
	return posted, nil
}
