package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/handlers"
	"github.com/SscSPs/pos_ledger/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, code, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, code string, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}
func (m *MockAccountService) SeedDefaultChart(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) ListEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntry(ctx context.Context, draft domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, draft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntryInTx(ctx context.Context, repos portsrepo.RepositoryProvider, draft domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, repos, draft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GeneralLedger(ctx context.Context, code string, filter domain.JournalFilter) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, code, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}
func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, filter domain.JournalFilter) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) DashboardSummary(ctx context.Context, filter domain.JournalFilter) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock SalesService ---
type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) ProcessSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SaleResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleResult), args.Error(1)
}
func (m *MockSalesService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSalesService) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

var _ portssvc.SalesSvcFacade = (*MockSalesService)(nil)

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockPayrollService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockPayrollService) PaySalary(ctx context.Context, employeeID string, req dto.PaySalaryRequest, userID string) (*domain.PayrollResult, error) {
	args := m.Called(ctx, employeeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollResult), args.Error(1)
}
func (m *MockPayrollService) ResetPayCycle(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.PayrollSvcFacade = (*MockPayrollService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	accounts  *MockAccountService
	journals  *MockJournalService
	reporting *MockReportingService
	sales     *MockSalesService
	payroll   *MockPayrollService
	jwtSecret string
	userID    string
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pos-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.accounts = new(MockAccountService)
	suite.journals = new(MockJournalService)
	suite.reporting = new(MockReportingService)
	suite.sales = new(MockSalesService)
	suite.payroll = new(MockPayrollService)

	container := &portssvc.ServiceContainer{
		Account:   suite.accounts,
		Journal:   suite.journals,
		Reporting: suite.reporting,
		Sales:     suite.sales,
		Payroll:   suite.payroll,
	}

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterV1Routes(v1, container)
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1-1400", Name: "Prepaid Rent", AccountType: domain.Asset}
	created := &domain.Account{Code: "1-1400", Name: "Prepaid Rent", AccountType: domain.Asset}
	suite.accounts.On("CreateAccount", mock.Anything, req, suite.userID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1-1400", resp.Code)
	suite.Equal("DEBIT", resp.NormalBalance)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidTypeRejectedBeforeService() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "9-0000", "name": "Misc", "accountType": "INCOME",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.accounts.On("CreateAccount", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrDuplicateAccountCode).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code: "1-1100", Name: "Cash", AccountType: domain.Asset,
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accounts.On("GetAccount", mock.Anything, "9-9999").
		Return(nil, fmt.Errorf("account 9-9999: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/9-9999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteAccount_InUse() {
	suite.accounts.On("DeleteAccount", mock.Anything, "1-1100", suite.userID).
		Return(apperrors.ErrAccountInUse).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/1-1100", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.errorMessage(w), "referenced by journal lines")
}

func (suite *HandlerTestSuite) TestDeleteAccount_Success() {
	suite.accounts.On("DeleteAccount", mock.Anything, "6-2000", suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/6-2000", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestGetLedger_PassesPeriod() {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	ledger := &domain.GeneralLedger{Account: domain.Account{Code: "1-1100"}, ClosingBalance: decimal.NewFromInt(120)}
	suite.reporting.On("GeneralLedger", mock.Anything, "1-1100", domain.JournalFilter{From: from, To: to}).
		Return(ledger, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1-1100/ledger?from=2024-03-01&to=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.reporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateJournal_Unbalanced() {
	suite.journals.On("PostEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), suite.userID).
		Return(nil, apperrors.ErrUnbalancedEntry).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", dto.CreateJournalRequest{
		Date:        "2024-03-01",
		Description: "Owner investment",
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1-1100", Debit: decimal.NewFromInt(100)},
			{AccountCode: "3-1000", Credit: decimal.NewFromInt(90)},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "debit and credit must balance")
}

func (suite *HandlerTestSuite) TestCreateJournal_Success() {
	posted := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Reference: "JV-1",
		Lines: []domain.JournalLine{
			domain.DebitLine("1-1100", decimal.NewFromInt(100)),
			domain.CreditLine("3-1000", decimal.NewFromInt(100)),
		},
	}
	suite.journals.On("PostEntry", mock.Anything, mock.MatchedBy(func(d domain.JournalEntry) bool {
		return len(d.Lines) == 2 && d.Date.Equal(posted.Date)
	}), suite.userID).Return(posted, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", dto.CreateJournalRequest{
		Date:        "2024-03-01",
		Description: "Owner investment",
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1-1100", Debit: decimal.NewFromInt(100)},
			{AccountCode: "3-1000", Credit: decimal.NewFromInt(100)},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(posted.EntryID, resp.EntryID)
	suite.True(resp.TotalDebit.Equal(resp.TotalCredit))
}

func (suite *HandlerTestSuite) TestListJournals_InvalidLimit() {
	w := suite.do(http.MethodGet, "/api/v1/journals?limit=500", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSale_PersistenceUnavailable() {
	suite.sales.On("ProcessSale", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("save sale: %w", apperrors.ErrPersistenceUnavailable)).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", dto.CreateSaleRequest{
		Items:    []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: decimal.NewFromInt(50)}},
		Subtotal: decimal.NewFromInt(50),
		Total:    decimal.NewFromInt(50),
	})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("5", w.Header().Get("Retry-After"))
}

func (suite *HandlerTestSuite) TestCreateSale_InsufficientStock() {
	suite.sales.On("ProcessSale", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", dto.CreateSaleRequest{
		Items:    []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 99, UnitPrice: decimal.NewFromInt(50)}},
		Subtotal: decimal.NewFromInt(4950),
		Total:    decimal.NewFromInt(4950),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateSale_UnknownPaymentMethod() {
	w := suite.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"items":         []map[string]any{{"productID": "p-1", "quantity": 1, "unitPrice": "10"}},
		"subtotal":      "10",
		"total":         "10",
		"paymentMethod": "BARTER",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.sales.AssertNotCalled(suite.T(), "ProcessSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPaySalary_AlreadyPaidWithoutBody() {
	suite.payroll.On("PaySalary", mock.Anything, "emp-1", dto.PaySalaryRequest{}, suite.userID).
		Return(nil, apperrors.ErrAlreadyPaid).Once()

	w := suite.do(http.MethodPost, "/api/v1/employees/emp-1/pay", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.payroll.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestResetPayCycle() {
	suite.payroll.On("ResetPayCycle", mock.Anything, suite.userID).Return(3, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/employees/reset-pay-cycle", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ResetPayCycleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.Reset)
}

func (suite *HandlerTestSuite) TestTrialBalance_DefaultsToToday() {
	today := domain.NormalizeDate(time.Now().UTC())
	suite.reporting.On("TrialBalance", mock.Anything, mock.MatchedBy(func(asOf time.Time) bool {
		// Tolerate a run that crosses midnight.
		return asOf.Equal(today) || asOf.Equal(today.AddDate(0, 0, 1))
	})).Return(&domain.TrialBalanceReport{AsOf: today}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.reporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestIncomeStatement_InvertedPeriod() {
	w := suite.do(http.MethodGet, "/api/v1/reports/income-statement?from=2024-04-01&to=2024-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reporting.AssertNotCalled(suite.T(), "IncomeStatement", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestBalanceSheet_InvalidDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=31-03-2024", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "YYYY-MM-DD")
}

func (suite *HandlerTestSuite) TestUnexpectedErrorDoesNotLeakDetails() {
	suite.reporting.On("DashboardSummary", mock.Anything, domain.JournalFilter{}).
		Return(nil, apperrors.NewAppError(500, "query failed", fmt.Errorf("relation \"sales\" does not exist"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/dashboard", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to build dashboard", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
