package services

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// ReportingService defines the financial statement operations.
// Every figure is derived from the journal on demand.
type ReportingService interface {
	// GeneralLedger returns the running-balance history of one account inside filter.
	GeneralLedger(ctx context.Context, code string, filter domain.JournalFilter) (*domain.GeneralLedger, error)

	// TrialBalance lists every account balance on its normal side as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// IncomeStatement returns revenue and expense activity inside filter.
	IncomeStatement(ctx context.Context, filter domain.JournalFilter) (*domain.IncomeStatementReport, error)

	// BalanceSheet returns asset, liability and equity balances as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// DashboardSummary returns the headline figures of the period.
	DashboardSummary(ctx context.Context, filter domain.JournalFilter) (*domain.DashboardSummary, error)
}
