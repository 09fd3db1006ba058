package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the product catalogue.
type Product struct {
	ProductID string          `db:"product_id" json:"productID"`
	SKU       string          `db:"sku" json:"sku"`
	Name      string          `db:"name" json:"name"`
	Category  string          `db:"category" json:"category"`
	Stock     int             `db:"stock" json:"stock"`
	Cost      decimal.Decimal `db:"cost" json:"cost"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Status    string          `db:"status" json:"status"`
	AuditFields
}

// Employee is a payroll row.
type Employee struct {
	EmployeeID string          `db:"employee_id" json:"employeeID"`
	Name       string          `db:"name" json:"name"`
	Position   string          `db:"position" json:"position"`
	Salary     decimal.Decimal `db:"salary" json:"salary"`
	Status     string          `db:"status" json:"status"`
	AuditFields
}

// Job is a labour job order row.
type Job struct {
	JobID       string          `db:"job_id" json:"jobID"`
	Title       string          `db:"title" json:"title"`
	Assignee    string          `db:"assignee" json:"assignee"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Status      string          `db:"status" json:"status"`
	CompletedAt *time.Time      `db:"completed_at" json:"completedAt,omitempty"`
	AuditFields
}

// Sale is the header row of a sale. Items are stored separately in SQL and
// embedded in the bolt document.
type Sale struct {
	SaleID        string          `db:"sale_id" json:"saleID"`
	SaleDate      time.Time       `db:"sale_date" json:"saleDate"`
	CustomerID    string          `db:"customer_id" json:"customerID"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	Shipping      decimal.Decimal `db:"shipping" json:"shipping"`
	Total         decimal.Decimal `db:"total" json:"total"`
	TotalCost     decimal.Decimal `db:"total_cost" json:"totalCost"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	Items         []SaleItem      `db:"-" json:"items"`
	AuditFields
}

// SaleItem is one cart line of a sale.
type SaleItem struct {
	SaleID      string          `db:"sale_id" json:"saleID"`
	LineNo      int             `db:"line_no" json:"lineNo"`
	ProductID   string          `db:"product_id" json:"productID"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	UnitCost    decimal.Decimal `db:"unit_cost" json:"unitCost"`
}

// Customer is a customer row.
type Customer struct {
	CustomerID string `db:"customer_id" json:"customerID"`
	Name       string `db:"name" json:"name"`
	Phone      string `db:"phone" json:"phone"`
	Email      string `db:"email" json:"email"`
	Address    string `db:"address" json:"address"`
	AuditFields
}

// Settings is the single store settings row.
type Settings struct {
	StoreName         string `db:"store_name" json:"storeName"`
	Address           string `db:"address" json:"address"`
	Phone             string `db:"phone" json:"phone"`
	Email             string `db:"email" json:"email"`
	LowStockThreshold int    `db:"low_stock_threshold" json:"lowStockThreshold"`
	AuditFields
}
