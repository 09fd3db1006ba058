package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
)

// reportingService derives every statement from the journal on demand.
// Signs always come from the accounting package.
type reportingService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// snapshot loads the chart and the entries inside filter.
func (s *reportingService) snapshot(ctx context.Context, filter domain.JournalFilter) ([]domain.Account, []domain.JournalEntry, error) {
	accounts, err := s.repos.AccountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, nil, PersistenceError(fmt.Errorf("failed to list accounts: %w", err))
	}
	entries, err := s.repos.JournalRepo.ListEntries(ctx, filter)
	if err != nil {
		return nil, nil, PersistenceError(fmt.Errorf("failed to list journal entries: %w", err))
	}
	return accounts, entries, nil
}

// GeneralLedger folds every entry up to filter.To so the running balance of the
// first row in range already includes the opening balance.
func (s *reportingService) GeneralLedger(ctx context.Context, code string, filter domain.JournalFilter) (*domain.GeneralLedger, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	account, err := s.repos.AccountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, PersistenceError(err)
	}
	entries, err := s.repos.JournalRepo.ListEntries(ctx, domain.JournalFilter{To: filter.To})
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for general ledger", slog.String("account_code", code))
		return nil, PersistenceError(fmt.Errorf("failed to list journal entries: %w", err))
	}

	allRows, err := accounting.AccountLedger(*account, entries)
	if err != nil {
		return nil, err
	}

	report := &domain.GeneralLedger{
		Account:        *account,
		From:           filter.From,
		To:             filter.To,
		OpeningBalance: decimal.Zero,
		Rows:           []domain.LedgerRow{},
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	for _, row := range allRows {
		if !filter.From.IsZero() && row.Date.Before(domain.NormalizeDate(filter.From)) {
			report.OpeningBalance = row.RunningBalance
			continue
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	report.ClosingBalance = report.OpeningBalance
	if n := len(report.Rows); n > 0 {
		report.ClosingBalance = report.Rows[n-1].RunningBalance
	}
	return report, nil
}

// TrialBalance places each balance on the account's normal side; a negative
// balance is shown on the opposite side.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	accounts, entries, err := s.snapshot(ctx, domain.JournalFilter{To: asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to load trial balance data")
		return nil, err
	}
	balances, err := accounting.Balances(accounts, entries)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		balance := balances[acc.Code]
		if balance.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountCode: acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		onNormalSide := balance.IsPositive()
		if (acc.AccountType.NormalBalance() == domain.Debit) == onNormalSide {
			row.Debit = balance.Abs()
		} else {
			row.Credit = balance.Abs()
		}
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

func (s *reportingService) IncomeStatement(ctx context.Context, filter domain.JournalFilter) (*domain.IncomeStatementReport, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	accounts, entries, err := s.snapshot(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load income statement data")
		return nil, err
	}
	return incomeStatement(accounts, entries, filter)
}

func incomeStatement(accounts []domain.Account, entries []domain.JournalEntry, filter domain.JournalFilter) (*domain.IncomeStatementReport, error) {
	balances, err := accounting.Balances(accounts, entries)
	if err != nil {
		return nil, err
	}
	report := &domain.IncomeStatementReport{
		From:         filter.From,
		To:           filter.To,
		Revenue:      []domain.AccountAmount{},
		Expenses:     []domain.AccountAmount{},
		RevenueTotal: decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, acc := range accounts {
		amount := balances[acc.Code]
		if amount.IsZero() {
			continue
		}
		line := domain.AccountAmount{AccountCode: acc.Code, Name: acc.Name, NetAmount: amount}
		switch acc.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, line)
			report.RevenueTotal = report.RevenueTotal.Add(amount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, line)
			report.ExpenseTotal = report.ExpenseTotal.Add(amount)
		}
	}
	report.NetIncome = report.RevenueTotal.Sub(report.ExpenseTotal)
	return report, nil
}

// BalanceSheet carries net income of all entries up to asOf into the
// liabilities and equity side.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	accounts, entries, err := s.snapshot(ctx, domain.JournalFilter{To: asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to load balance sheet data")
		return nil, err
	}
	balances, err := accounting.Balances(accounts, entries)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		NetIncome:        decimal.Zero,
	}
	for _, acc := range accounts {
		amount := balances[acc.Code]
		line := domain.AccountAmount{AccountCode: acc.Code, Name: acc.Name, NetAmount: amount}
		switch acc.AccountType {
		case domain.Asset:
			if !amount.IsZero() {
				report.Assets = append(report.Assets, line)
			}
			report.TotalAssets = report.TotalAssets.Add(amount)
		case domain.Liability:
			if !amount.IsZero() {
				report.Liabilities = append(report.Liabilities, line)
			}
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case domain.Equity:
			if !amount.IsZero() {
				report.Equity = append(report.Equity, line)
			}
			report.TotalEquity = report.TotalEquity.Add(amount)
		case domain.Revenue:
			report.NetIncome = report.NetIncome.Add(amount)
		case domain.Expense:
			report.NetIncome = report.NetIncome.Sub(amount)
		}
	}
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity).Add(report.NetIncome)
	report.Balanced = report.TotalAssets.Equal(report.TotalLiabilitiesAndEquity)
	if !report.Balanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities_and_equity", report.TotalLiabilitiesAndEquity.String()))
	}
	return report, nil
}

// DashboardSummary reports sales totals, net income, the cash position as of
// the end of the period and the stock alerts.
func (s *reportingService) DashboardSummary(ctx context.Context, filter domain.JournalFilter) (*domain.DashboardSummary, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	accounts, entries, err := s.snapshot(ctx, domain.JournalFilter{To: filter.To})
	if err != nil {
		s.LogError(ctx, err, "Failed to load dashboard data")
		return nil, err
	}
	income, err := incomeStatement(accounts, accounting.FilterEntries(entries, filter), filter)
	if err != nil {
		return nil, err
	}
	balances, err := accounting.Balances(accounts, entries)
	if err != nil {
		return nil, err
	}

	sales, err := s.repos.SaleRepo.ListSales(ctx, filter)
	if err != nil {
		return nil, PersistenceError(fmt.Errorf("failed to list sales: %w", err))
	}
	products, err := s.repos.ProductRepo.ListProducts(ctx)
	if err != nil {
		return nil, PersistenceError(fmt.Errorf("failed to list products: %w", err))
	}

	summary := &domain.DashboardSummary{
		From:         filter.From,
		To:           filter.To,
		SalesCount:   len(sales),
		SalesRevenue: decimal.Zero,
		NetIncome:    income.NetIncome,
		CashPosition: decimal.Zero,
	}
	for _, sale := range sales {
		summary.SalesRevenue = summary.SalesRevenue.Add(sale.Total)
	}
	for _, code := range s.Accounts.CashAccounts() {
		summary.CashPosition = summary.CashPosition.Add(balances[code])
	}
	for _, p := range products {
		switch p.Status {
		case domain.ProductLowStock:
			summary.LowStockProducts++
		case domain.ProductOutOfStock:
			summary.OutOfStockProducts++
		}
	}
	return summary, nil
}
