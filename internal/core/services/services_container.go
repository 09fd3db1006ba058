package services

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
)

// OptionsFromConfig translates the ledger settings of cfg into service options.
func OptionsFromConfig(cfg *config.Config) []ServiceOption {
	return []ServiceOption{
		WithPersistenceTimeout(cfg.PersistenceTimeout),
		WithPostingAccounts(cfg.PostingAccounts),
		WithLowStockThreshold(cfg.LowStockThreshold),
		WithCacheTTL(cfg.COACacheTTL),
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// seedChart may be nil to use the built-in default chart.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, seedChart []domain.Account, extra ...ServiceOption) *portssvc.ServiceContainer {
	options := append(OptionsFromConfig(cfg), extra...)

	container := &portssvc.ServiceContainer{}

	// The journal service is shared because every business operation posts through it.
	container.Journal = NewJournalService(repos, options...)
	container.Account = NewAccountService(repos, seedChart, options...)
	container.Reporting = NewReportingService(repos, options...)
	container.Sales = NewSalesService(repos, container.Journal, options...)
	container.Inventory = NewInventoryService(repos, container.Journal, options...)
	container.Payroll = NewPayrollService(repos, container.Journal, options...)
	container.Jobs = NewJobService(repos, container.Journal, options...)
	container.Expense = NewExpenseService(repos, container.Journal, options...)
	container.Customer = NewCustomerService(repos, options...)
	container.Settings = NewSettingsService(repos, options...)

	return container
}
