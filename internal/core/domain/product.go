package domain

import "github.com/shopspring/decimal"

// ProductStatus reflects the stock level of a product.
type ProductStatus string

const (
	ProductActive     ProductStatus = "ACTIVE"
	ProductLowStock   ProductStatus = "LOW_STOCK"
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// DefaultLowStockThreshold is used when neither settings nor config provide one.
const DefaultLowStockThreshold = 10

// StockStatus derives the status for a stock level.
func StockStatus(stock, lowStockThreshold int) ProductStatus {
	switch {
	case stock <= 0:
		return ProductOutOfStock
	case stock < lowStockThreshold:
		return ProductLowStock
	default:
		return ProductActive
	}
}

// Product holds the catalogue fields the ledger needs.
type Product struct {
	ProductID string          `json:"productID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	Cost      decimal.Decimal `json:"cost"`  // Last purchase unit cost
	Price     decimal.Decimal `json:"price"` // Selling price
	Status    ProductStatus   `json:"status"`
	AuditFields
}

// RemoveStock decrements stock, clamping at zero, and refreshes the status.
func (p *Product) RemoveStock(qty, lowStockThreshold int) {
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.Status = StockStatus(p.Stock, lowStockThreshold)
}

// Restock adds purchased units and overwrites the cost with the latest unit cost.
func (p *Product) Restock(qty int, unitCost decimal.Decimal, lowStockThreshold int) {
	p.Stock += qty
	p.Cost = unitCost
	p.Status = StockStatus(p.Stock, lowStockThreshold)
}

// RestockResult is returned by a restock operation. Entry is nil for zero-cost restocks.
type RestockResult struct {
	Product   Product       `json:"product"`
	Reference string        `json:"reference"`
	Entry     *JournalEntry `json:"entry,omitempty"`
}
