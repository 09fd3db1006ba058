package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostingAccounts maps the roles used by the business operations to account codes.
type PostingAccounts struct {
	Cash             string `json:"cash"`
	Bank             string `json:"bank"`
	QRIS             string `json:"qris"`
	Receivable       string `json:"receivable"`
	Inventory        string `json:"inventory"`
	SalesRevenue     string `json:"salesRevenue"`
	OtherRevenue     string `json:"otherRevenue"`
	SalesDiscount    string `json:"salesDiscount"`
	COGS             string `json:"cogs"`
	SalaryExpense    string `json:"salaryExpense"`
	OperatingExpense string `json:"operatingExpense"`
}

// DefaultPostingAccounts returns the codes of the default chart.
func DefaultPostingAccounts() PostingAccounts {
	return PostingAccounts{
		Cash:             "1-1100",
		Bank:             "1-1110",
		QRIS:             "1-1120",
		Receivable:       "1-1200",
		Inventory:        "1-1300",
		SalesRevenue:     "4-1000",
		OtherRevenue:     "4-2000",
		SalesDiscount:    "5-2000",
		COGS:             "5-1000",
		SalaryExpense:    "6-1000",
		OperatingExpense: "6-3000",
	}
}

// ForPaymentMethod returns the cash-like account money moves through.
func (p PostingAccounts) ForPaymentMethod(method PaymentMethod) string {
	switch method {
	case PaymentBank:
		return p.Bank
	case PaymentQRIS:
		return p.QRIS
	default:
		return p.Cash
	}
}

// CashAccounts returns the accounts counted as the cash position.
func (p PostingAccounts) CashAccounts() []string {
	return []string{p.Cash, p.Bank, p.QRIS}
}

// DefaultChart returns the starter chart of accounts for a small shop.
func DefaultChart() []Account {
	return []Account{
		{Code: "1-1100", Name: "Cash on Hand", AccountType: Asset},
		{Code: "1-1110", Name: "Bank", AccountType: Asset},
		{Code: "1-1120", Name: "QRIS / E-Wallet", AccountType: Asset},
		{Code: "1-1200", Name: "Accounts Receivable", AccountType: Asset},
		{Code: "1-1300", Name: "Merchandise Inventory", AccountType: Asset},
		{Code: "2-1100", Name: "Accounts Payable", AccountType: Liability},
		{Code: "2-1200", Name: "Salaries Payable", AccountType: Liability},
		{Code: "3-1000", Name: "Owner Capital", AccountType: Equity},
		{Code: "3-2000", Name: "Owner Drawings", AccountType: Equity},
		{Code: "4-1000", Name: "Sales Revenue", AccountType: Revenue},
		{Code: "4-2000", Name: "Shipping and Other Revenue", AccountType: Revenue},
		{Code: "5-1000", Name: "Cost of Goods Sold", AccountType: Expense},
		{Code: "5-2000", Name: "Sales Discounts", AccountType: Expense},
		{Code: "6-1000", Name: "Salaries and Wages Expense", AccountType: Expense},
		{Code: "6-2000", Name: "Utilities Expense", AccountType: Expense},
		{Code: "6-3000", Name: "Other Operating Expense", AccountType: Expense},
	}
}

// Reference prefixes of the business operations.
const (
	SaleRefPrefix    = "INV"
	PayrollRefPrefix = "PAY"
	RestockRefPrefix = "PUR"
	JobRefPrefix     = "JPAY"
	ExpenseRefPrefix = "EXP"
	ManualRefPrefix  = "JV"
)

// NewReference builds "<prefix>-<unix millis>-<suffix>" for a business transaction id.
func NewReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), uuid.NewString()[:6])
}
