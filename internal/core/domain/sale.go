package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how money moved for an operation.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentBank PaymentMethod = "BANK"
	PaymentQRIS PaymentMethod = "QRIS"
)

// ParsePaymentMethod maps free-form input to a payment method. Unknown values
// fall back to cash.
func ParsePaymentMethod(s string) PaymentMethod {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentBank, "TRANSFER":
		return PaymentBank
	case PaymentQRIS, "E-WALLET", "EWALLET":
		return PaymentQRIS
	default:
		return PaymentCash
	}
}

// SaleItem is one cart line of a sale.
type SaleItem struct {
	LineNo      int             `json:"lineNo"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// Sale is the transaction record of a point-of-sale checkout.
type Sale struct {
	SaleID        string          `json:"saleID"`
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customerID,omitempty"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	AuditFields
}

// SaleFilter restricts sales to an inclusive date range.
type SaleFilter = JournalFilter

// SaleResult is returned by a processed sale: the record plus its postings.
type SaleResult struct {
	Sale    Sale           `json:"sale"`
	Entries []JournalEntry `json:"entries"`
}
