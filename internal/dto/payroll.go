package dto

import "github.com/shopspring/decimal"

// CreateEmployeeRequest defines the data needed to add an employee.
type CreateEmployeeRequest struct {
	Name     string          `json:"name" binding:"required"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
}

// PaySalaryRequest pays an employee for the current cycle.
type PaySalaryRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,paymentmethod"` // Defaults to BANK
	Date          string `json:"date"`
}

// ResetPayCycleResponse reports how many employees were reset.
type ResetPayCycleResponse struct {
	Reset int `json:"reset"`
}

// CreateJobRequest defines a labour job order.
type CreateJobRequest struct {
	Title    string          `json:"title" binding:"required"`
	Assignee string          `json:"assignee"`
	Cost     decimal.Decimal `json:"cost"`
}

// CompleteJobRequest carries the optional posting date of a job payout.
type CompleteJobRequest struct {
	Date string `json:"date"`
}

// RecordExpenseRequest records an operating expense paid from a cash-like account.
type RecordExpenseRequest struct {
	Date          string          `json:"date"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	AccountCode   string          `json:"accountCode"` // Defaults to the operating expense account
	PaymentMethod string          `json:"paymentMethod" binding:"omitempty,paymentmethod"`
}
