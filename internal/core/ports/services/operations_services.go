package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// SalesSvcFacade defines point-of-sale operations.
type SalesSvcFacade interface {
	// ProcessSale decrements stock, records the sale and posts its revenue and
	// COGS entries in one unit of work.
	ProcessSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SaleResult, error)
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
}

// InventorySvcFacade defines product catalogue and restock operations.
type InventorySvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// RestockProduct adds stock at the last purchase cost and posts the purchase.
	RestockProduct(ctx context.Context, productID string, req dto.RestockRequest, userID string) (*domain.RestockResult, error)
}

// PayrollSvcFacade defines employee and salary operations.
type PayrollSvcFacade interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)

	// PaySalary marks the employee paid and posts the salary expense.
	PaySalary(ctx context.Context, employeeID string, req dto.PaySalaryRequest, userID string) (*domain.PayrollResult, error)

	// ResetPayCycle sets every paid employee back to pending and returns how many changed.
	ResetPayCycle(ctx context.Context, userID string) (int, error)
}

// JobSvcFacade defines labour job order operations.
type JobSvcFacade interface {
	CreateJob(ctx context.Context, req dto.CreateJobRequest, userID string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// CompleteJob marks the job done and posts its wages payout.
	CompleteJob(ctx context.Context, jobID string, req dto.CompleteJobRequest, userID string) (*domain.JobCompletionResult, error)
}

// ExpenseSvc records operating expenses.
type ExpenseSvc interface {
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, userID string) (*domain.JournalEntry, error)
}

// CustomerSvcFacade defines customer operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// SettingsSvcFacade defines store settings operations.
type SettingsSvcFacade interface {
	// GetSettings returns the saved settings, or defaults when none are saved yet.
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.Settings, error)
}
