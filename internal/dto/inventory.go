package dto

import "github.com/shopspring/decimal"

// CreateProductRequest defines the data needed to add a product.
type CreateProductRequest struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category"`
	Stock    int             `json:"stock" binding:"min=0"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
}

// RestockRequest records a purchase of stock.
type RestockRequest struct {
	Quantity      int              `json:"quantity" binding:"required,gt=0"`
	UnitCost      decimal.Decimal  `json:"unitCost"`
	TotalCost     *decimal.Decimal `json:"totalCost"` // Optional, must equal quantity x unitCost
	PaymentMethod string           `json:"paymentMethod" binding:"omitempty,paymentmethod"`
	Date          string           `json:"date"`
}
