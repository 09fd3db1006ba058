package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/repositories/database/boltdb"
)

const testUser = "cashier-1"

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// LedgerFlowTestSuite runs the business operations against a real bolt store.
type LedgerFlowTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *boltdb.Store
	repos portsrepo.RepositoryProvider
	cfg   *config.Config
	svc   *portssvc.ServiceContainer
	today time.Time
}

func (suite *LedgerFlowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	store, err := boltdb.Open(filepath.Join(suite.T().TempDir(), "ledger.db"), time.Second)
	suite.Require().NoError(err)
	suite.store = store
	suite.repos = boltdb.NewRepositoryProvider(store)

	suite.cfg = &config.Config{
		PersistenceTimeout: 5 * time.Second,
		LowStockThreshold:  domain.DefaultLowStockThreshold,
		PostingAccounts:    domain.DefaultPostingAccounts(),
	}
	suite.today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.svc = suite.newContainer()

	_, err = suite.svc.Account.SeedDefaultChart(suite.ctx, testUser)
	suite.Require().NoError(err)
}

func (suite *LedgerFlowTestSuite) TearDownTest() {
	suite.Require().NoError(suite.store.Close())
}

func (suite *LedgerFlowTestSuite) newContainer(extra ...services.ServiceOption) *portssvc.ServiceContainer {
	clock := services.WithClock(func() time.Time { return suite.today.Add(10 * time.Hour) })
	return services.NewServiceContainer(suite.cfg, suite.repos, nil, append([]services.ServiceOption{clock}, extra...)...)
}

func (suite *LedgerFlowTestSuite) invest(amount int64) {
	_, err := suite.svc.Journal.PostEntry(suite.ctx, domain.JournalEntry{
		Date:        suite.today,
		Description: "Owner investment",
		Lines: []domain.JournalLine{
			domain.DebitLine("1-1100", dec(amount)),
			domain.CreditLine("3-1000", dec(amount)),
		},
	}, testUser)
	suite.Require().NoError(err)
}

func (suite *LedgerFlowTestSuite) stockedProduct(qty int, unitCost int64) *domain.Product {
	product, err := suite.svc.Inventory.CreateProduct(suite.ctx, dto.CreateProductRequest{
		Name: "Kopi Susu", Price: dec(10000),
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.ProductOutOfStock, product.Status)

	result, err := suite.svc.Inventory.RestockProduct(suite.ctx, product.ProductID, dto.RestockRequest{
		Quantity: qty, UnitCost: dec(unitCost), PaymentMethod: "CASH",
	}, testUser)
	suite.Require().NoError(err)
	return &result.Product
}

func (suite *LedgerFlowTestSuite) saleRequest(productID string, qty int) dto.CreateSaleRequest {
	subtotal := dec(10000).Mul(decimal.NewFromInt(int64(qty)))
	return dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: qty, UnitPrice: dec(10000)}},
		Subtotal:      subtotal,
		Discount:      dec(2000),
		Shipping:      dec(5000),
		Total:         subtotal.Sub(dec(2000)).Add(dec(5000)),
		PaymentMethod: "CASH",
	}
}

func (suite *LedgerFlowTestSuite) allEntries() []domain.JournalEntry {
	entries, err := suite.repos.JournalRepo.ListEntries(suite.ctx, domain.JournalFilter{})
	suite.Require().NoError(err)
	return entries
}

func (suite *LedgerFlowTestSuite) lineFor(entry domain.JournalEntry, code string) domain.JournalLine {
	for _, l := range entry.Lines {
		if l.AccountCode == code {
			return l
		}
	}
	suite.FailNow("line not found", "account %s in entry %s", code, entry.EntryID)
	return domain.JournalLine{}
}

// --- Test Cases ---

func (suite *LedgerFlowTestSuite) TestSaleRoundTrip() {
	product := suite.stockedProduct(20, 6000)

	result, err := suite.svc.Sales.ProcessSale(suite.ctx, suite.saleRequest(product.ProductID, 2), testUser)
	suite.Require().NoError(err)

	suite.Require().Len(result.Entries, 2)
	revenue, cogs := result.Entries[0], result.Entries[1]
	suite.Equal(result.Sale.SaleID, revenue.Reference)
	suite.Equal(result.Sale.SaleID, cogs.Reference)
	suite.True(dec(23000).Equal(suite.lineFor(revenue, "1-1100").Debit))
	suite.True(dec(2000).Equal(suite.lineFor(revenue, "5-2000").Debit))
	suite.True(dec(20000).Equal(suite.lineFor(revenue, "4-1000").Credit))
	suite.True(dec(5000).Equal(suite.lineFor(revenue, "4-2000").Credit))
	suite.True(dec(12000).Equal(suite.lineFor(cogs, "5-1000").Debit))
	suite.True(dec(12000).Equal(suite.lineFor(cogs, "1-1300").Credit))

	stored, err := suite.svc.Sales.GetSale(suite.ctx, result.Sale.SaleID)
	suite.Require().NoError(err)
	suite.Require().Len(stored.Items, 1)
	suite.True(dec(6000).Equal(stored.Items[0].UnitCost))
	suite.True(dec(12000).Equal(stored.TotalCost))
	suite.Equal(suite.today, stored.Date)

	after, err := suite.svc.Inventory.GetProduct(suite.ctx, product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(18, after.Stock)

	byRef, err := suite.svc.Journal.ListEntriesByReference(suite.ctx, result.Sale.SaleID)
	suite.Require().NoError(err)
	suite.Len(byRef, 2)
}

func (suite *LedgerFlowTestSuite) TestSaleInsufficientStockWritesNothing() {
	product := suite.stockedProduct(1, 6000)
	before := len(suite.allEntries())

	_, err := suite.svc.Sales.ProcessSale(suite.ctx, suite.saleRequest(product.ProductID, 2), testUser)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)

	after, err := suite.svc.Inventory.GetProduct(suite.ctx, product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(1, after.Stock)
	suite.Len(suite.allEntries(), before)

	sales, err := suite.svc.Sales.ListSales(suite.ctx, domain.SaleFilter{})
	suite.Require().NoError(err)
	suite.Empty(sales)
}

func (suite *LedgerFlowTestSuite) TestSalePostingFailureRollsBackStock() {
	product := suite.stockedProduct(5, 6000)
	before := len(suite.allEntries())

	broken := domain.DefaultPostingAccounts()
	broken.COGS = "5-9999"
	svc := suite.newContainer(services.WithPostingAccounts(broken))

	_, err := svc.Sales.ProcessSale(suite.ctx, suite.saleRequest(product.ProductID, 1), testUser)
	suite.ErrorIs(err, apperrors.ErrUnknownAccount)

	after, err := suite.svc.Inventory.GetProduct(suite.ctx, product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(5, after.Stock)
	suite.Len(suite.allEntries(), before)
}

func (suite *LedgerFlowTestSuite) TestSaleRejectsInconsistentTotals() {
	product := suite.stockedProduct(5, 6000)
	req := suite.saleRequest(product.ProductID, 1)
	req.Total = req.Total.Add(dec(1))

	_, err := suite.svc.Sales.ProcessSale(suite.ctx, req, testUser)
	suite.ErrorIs(err, apperrors.ErrTotalMismatch)
}

func (suite *LedgerFlowTestSuite) TestSaleUnknownCustomer() {
	product := suite.stockedProduct(5, 6000)
	req := suite.saleRequest(product.ProductID, 1)
	req.CustomerID = "missing"

	_, err := suite.svc.Sales.ProcessSale(suite.ctx, req, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	customer, err := suite.svc.Customer.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "Budi"}, testUser)
	suite.Require().NoError(err)
	req.CustomerID = customer.CustomerID
	result, err := suite.svc.Sales.ProcessSale(suite.ctx, req, testUser)
	suite.Require().NoError(err)
	suite.Equal(customer.CustomerID, result.Sale.CustomerID)
}

func (suite *LedgerFlowTestSuite) TestRestockKeepsLastCost() {
	product := suite.stockedProduct(20, 6000)

	result, err := suite.svc.Inventory.RestockProduct(suite.ctx, product.ProductID, dto.RestockRequest{
		Quantity: 10, UnitCost: dec(7000), PaymentMethod: "BANK",
	}, testUser)
	suite.Require().NoError(err)

	suite.Equal(30, result.Product.Stock)
	suite.True(dec(7000).Equal(result.Product.Cost))
	suite.Require().NotNil(result.Entry)
	suite.True(dec(70000).Equal(suite.lineFor(*result.Entry, "1-1300").Debit))
	suite.True(dec(70000).Equal(suite.lineFor(*result.Entry, "1-1110").Credit))

	total := dec(1)
	_, err = suite.svc.Inventory.RestockProduct(suite.ctx, product.ProductID, dto.RestockRequest{
		Quantity: 10, UnitCost: dec(7000), TotalCost: &total,
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrAmountMismatch)
}

func (suite *LedgerFlowTestSuite) TestZeroCostRestockPostsNothing() {
	product, err := suite.svc.Inventory.CreateProduct(suite.ctx, dto.CreateProductRequest{Name: "Sample"}, testUser)
	suite.Require().NoError(err)

	result, err := suite.svc.Inventory.RestockProduct(suite.ctx, product.ProductID, dto.RestockRequest{Quantity: 3}, testUser)
	suite.Require().NoError(err)
	suite.Nil(result.Entry)
	suite.Equal(3, result.Product.Stock)
	suite.Equal(domain.ProductLowStock, result.Product.Status)
	suite.Empty(suite.allEntries())
}

func (suite *LedgerFlowTestSuite) TestPaySalaryOncePerCycle() {
	employee, err := suite.svc.Payroll.CreateEmployee(suite.ctx, dto.CreateEmployeeRequest{
		Name: "Siti", Position: "Barista", Salary: dec(3000000),
	}, testUser)
	suite.Require().NoError(err)

	paid, err := suite.svc.Payroll.PaySalary(suite.ctx, employee.EmployeeID, dto.PaySalaryRequest{}, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.EmployeePaid, paid.Employee.Status)
	suite.True(dec(3000000).Equal(suite.lineFor(paid.Entry, "6-1000").Debit))
	suite.True(dec(3000000).Equal(suite.lineFor(paid.Entry, "1-1110").Credit))

	_, err = suite.svc.Payroll.PaySalary(suite.ctx, employee.EmployeeID, dto.PaySalaryRequest{}, testUser)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
	suite.Len(suite.allEntries(), 1)

	reset, err := suite.svc.Payroll.ResetPayCycle(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Equal(1, reset)

	_, err = suite.svc.Payroll.PaySalary(suite.ctx, employee.EmployeeID, dto.PaySalaryRequest{PaymentMethod: "CASH"}, testUser)
	suite.Require().NoError(err)
	suite.Len(suite.allEntries(), 2)
}

func (suite *LedgerFlowTestSuite) TestCompleteJobOnce() {
	job, err := suite.svc.Jobs.CreateJob(suite.ctx, dto.CreateJobRequest{
		Title: "Deep clean espresso machine", Assignee: "Andi", Cost: dec(150000),
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.JobPending, job.Status)

	done, err := suite.svc.Jobs.CompleteJob(suite.ctx, job.JobID, dto.CompleteJobRequest{}, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.JobDone, done.Job.Status)
	suite.NotNil(done.Job.CompletedAt)
	suite.True(dec(150000).Equal(suite.lineFor(done.Entry, "6-1000").Debit))
	suite.True(dec(150000).Equal(suite.lineFor(done.Entry, "1-1100").Credit))

	_, err = suite.svc.Jobs.CompleteJob(suite.ctx, job.JobID, dto.CompleteJobRequest{}, testUser)
	suite.ErrorIs(err, apperrors.ErrAlreadyCompleted)
	suite.Len(suite.allEntries(), 1)
}

func (suite *LedgerFlowTestSuite) TestRecordExpense() {
	entry, err := suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		Description: "Electricity", Amount: dec(450000), AccountCode: "6-2000",
	}, testUser)
	suite.Require().NoError(err)
	suite.True(dec(450000).Equal(suite.lineFor(*entry, "6-2000").Debit))
	suite.True(dec(450000).Equal(suite.lineFor(*entry, "1-1100").Credit))

	_, err = suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		Description: "Not an expense", Amount: dec(1), AccountCode: "1-1300",
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		Description: "Unknown", Amount: dec(1), AccountCode: "6-9999",
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrUnknownAccount)

	_, err = suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{Description: "Zero"}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerFlowTestSuite) TestManualJournalRules() {
	_, err := suite.svc.Journal.PostEntry(suite.ctx, domain.JournalEntry{
		Description: "Unbalanced",
		Lines:       []domain.JournalLine{domain.DebitLine("1-1100", dec(100)), domain.CreditLine("3-1000", dec(90))},
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)

	_, err = suite.svc.Journal.PostEntry(suite.ctx, domain.JournalEntry{
		Description: "Unknown account",
		Lines:       []domain.JournalLine{domain.DebitLine("1-1100", dec(100)), domain.CreditLine("3-9999", dec(100))},
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrUnknownAccount)

	_, err = suite.svc.Journal.PostEntry(suite.ctx, domain.JournalEntry{Description: "Empty"}, testUser)
	suite.ErrorIs(err, apperrors.ErrEmptyEntry)
	suite.Empty(suite.allEntries())

	posted, err := suite.svc.Journal.PostEntry(suite.ctx, domain.JournalEntry{
		Description: "Opening balance",
		Lines:       []domain.JournalLine{domain.DebitLine("1-1100", dec(100)), domain.CreditLine("3-1000", dec(100))},
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal(suite.today, posted.Date)
	suite.Contains(posted.Reference, domain.ManualRefPrefix+"-")

	fetched, err := suite.svc.Journal.GetEntry(suite.ctx, posted.EntryID)
	suite.Require().NoError(err)
	suite.Equal(posted.EntryID, fetched.EntryID)
	suite.Len(fetched.Lines, 2)
}

func (suite *LedgerFlowTestSuite) TestJournalPagination() {
	for i := 0; i < 5; i++ {
		suite.invest(int64(100 * (i + 1)))
	}

	first, err := suite.svc.Journal.ListEntries(suite.ctx, dto.ListJournalsParams{Limit: 3})
	suite.Require().NoError(err)
	suite.Len(first.Journals, 3)
	suite.Require().NotNil(first.NextToken)

	second, err := suite.svc.Journal.ListEntries(suite.ctx, dto.ListJournalsParams{Limit: 3, NextToken: *first.NextToken})
	suite.Require().NoError(err)
	suite.Len(second.Journals, 2)
	suite.Nil(second.NextToken)

	seen := map[string]bool{}
	for _, j := range append(first.Journals, second.Journals...) {
		suite.False(seen[j.EntryID], "entry %s returned twice", j.EntryID)
		seen[j.EntryID] = true
	}
}

func (suite *LedgerFlowTestSuite) TestAccountInUse() {
	suite.invest(1000)

	err := suite.svc.Account.DeleteAccount(suite.ctx, "1-1100", testUser)
	suite.ErrorIs(err, apperrors.ErrAccountInUse)

	liability := domain.Liability
	_, err = suite.svc.Account.UpdateAccount(suite.ctx, "3-1000", dto.UpdateAccountRequest{AccountType: &liability}, testUser)
	suite.ErrorIs(err, apperrors.ErrAccountInUse)

	name := "Petty Cash"
	updated, err := suite.svc.Account.UpdateAccount(suite.ctx, "1-1100", dto.UpdateAccountRequest{Name: &name}, testUser)
	suite.Require().NoError(err)
	suite.Equal("Petty Cash", updated.Name)

	suite.NoError(suite.svc.Account.DeleteAccount(suite.ctx, "6-2000", testUser))
	_, err = suite.svc.Account.GetAccount(suite.ctx, "6-2000")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.svc.Account.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Code: "1-1100", Name: "Duplicate", AccountType: domain.Asset,
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrDuplicateAccountCode)
}

func (suite *LedgerFlowTestSuite) TestSeedIsIdempotent() {
	created, err := suite.svc.Account.SeedDefaultChart(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Empty(created)

	accounts, err := suite.svc.Account.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(accounts, len(domain.DefaultChart()))
}

func (suite *LedgerFlowTestSuite) TestReportsAfterActivity() {
	suite.invest(1000000)
	product := suite.stockedProduct(20, 6000)
	_, err := suite.svc.Sales.ProcessSale(suite.ctx, suite.saleRequest(product.ProductID, 2), testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		Description: "Supplies", Amount: dec(50000),
	}, testUser)
	suite.Require().NoError(err)

	tb, err := suite.svc.Reporting.TrialBalance(suite.ctx, suite.today)
	suite.Require().NoError(err)
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit))
	suite.True(dec(1025000).Equal(tb.TotalDebit), "total debit %s", tb.TotalDebit)

	income, err := suite.svc.Reporting.IncomeStatement(suite.ctx, domain.JournalFilter{From: suite.today, To: suite.today})
	suite.Require().NoError(err)
	suite.True(dec(25000).Equal(income.RevenueTotal))
	suite.True(dec(64000).Equal(income.ExpenseTotal))
	suite.True(dec(-39000).Equal(income.NetIncome))

	bs, err := suite.svc.Reporting.BalanceSheet(suite.ctx, suite.today)
	suite.Require().NoError(err)
	suite.True(bs.Balanced)
	suite.True(dec(961000).Equal(bs.TotalAssets))
	suite.True(income.NetIncome.Equal(bs.NetIncome))

	ledger, err := suite.svc.Reporting.GeneralLedger(suite.ctx, "1-1100", domain.JournalFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(ledger.Rows, 4)
	suite.True(dec(1000000).Equal(ledger.Rows[0].RunningBalance))
	suite.True(dec(880000).Equal(ledger.Rows[1].RunningBalance))
	suite.True(dec(903000).Equal(ledger.Rows[2].RunningBalance))
	suite.True(dec(853000).Equal(ledger.ClosingBalance))

	dashboard, err := suite.svc.Reporting.DashboardSummary(suite.ctx, domain.JournalFilter{From: suite.today, To: suite.today})
	suite.Require().NoError(err)
	suite.Equal(1, dashboard.SalesCount)
	suite.True(dec(23000).Equal(dashboard.SalesRevenue))
	suite.True(dec(853000).Equal(dashboard.CashPosition))
	suite.Equal(0, dashboard.LowStockProducts)

	// Nothing is posted before the period.
	earlier, err := suite.svc.Reporting.TrialBalance(suite.ctx, suite.today.AddDate(0, 0, -1))
	suite.Require().NoError(err)
	suite.Empty(earlier.Rows)
}

func (suite *LedgerFlowTestSuite) TestLedgerOpeningBalance() {
	_, err := suite.svc.Journal.PostEntry(suite.ctx, domain.JournalEntry{
		Date:        suite.today.AddDate(0, 0, -10),
		Description: "Earlier investment",
		Lines:       []domain.JournalLine{domain.DebitLine("1-1100", dec(500)), domain.CreditLine("3-1000", dec(500))},
	}, testUser)
	suite.Require().NoError(err)
	suite.invest(200)

	ledger, err := suite.svc.Reporting.GeneralLedger(suite.ctx, "1-1100", domain.JournalFilter{From: suite.today})
	suite.Require().NoError(err)
	suite.True(dec(500).Equal(ledger.OpeningBalance))
	suite.Require().Len(ledger.Rows, 1)
	suite.True(dec(700).Equal(ledger.ClosingBalance))
}

func (suite *LedgerFlowTestSuite) TestSettingsThresholdOverridesConfig() {
	settings, err := suite.svc.Settings.GetSettings(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(domain.DefaultLowStockThreshold, settings.LowStockThreshold)

	_, err = suite.svc.Settings.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{
		StoreName: "Warung Kopi", LowStockThreshold: 50,
	}, testUser)
	suite.Require().NoError(err)

	product := suite.stockedProduct(20, 6000)
	suite.Equal(domain.ProductLowStock, product.Status)

	dashboard, err := suite.svc.Reporting.DashboardSummary(suite.ctx, domain.JournalFilter{})
	suite.Require().NoError(err)
	suite.Equal(1, dashboard.LowStockProducts)
}

// --- Run Test Suite ---
func TestLedgerFlow(t *testing.T) {
	suite.Run(t, new(LedgerFlowTestSuite))
}
