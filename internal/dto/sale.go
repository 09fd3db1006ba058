package dto

import (
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one cart line.
type SaleItemRequest struct {
	ProductID string           `json:"productID" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	UnitCost  *decimal.Decimal `json:"unitCost"` // Optional, defaults to the product's cost
}

// CreateSaleRequest is a point-of-sale checkout.
type CreateSaleRequest struct {
	Date          string            `json:"date"` // YYYY-MM-DD, defaults to today
	CustomerID    string            `json:"customerID"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Discount      decimal.Decimal   `json:"discount"`
	Shipping      decimal.Decimal   `json:"shipping"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMethod string            `json:"paymentMethod" binding:"omitempty,paymentmethod"`
}

// ListSalesParams filters sales by date.
type ListSalesParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}
