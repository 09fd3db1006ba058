package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	assert.Equal(t, domain.ProductOutOfStock, domain.StockStatus(0, 10))
	assert.Equal(t, domain.ProductLowStock, domain.StockStatus(9, 10))
	assert.Equal(t, domain.ProductActive, domain.StockStatus(10, 10))
}

func TestProduct_RemoveStockClampsAtZero(t *testing.T) {
	p := domain.Product{Stock: 3}
	p.RemoveStock(5, domain.DefaultLowStockThreshold)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, domain.ProductOutOfStock, p.Status)
}

func TestProduct_RestockUsesLastCost(t *testing.T) {
	p := domain.Product{Stock: 20, Cost: decimal.NewFromInt(400)}
	p.Restock(10, decimal.NewFromInt(500), domain.DefaultLowStockThreshold)
	assert.Equal(t, 30, p.Stock)
	assert.True(t, decimal.NewFromInt(500).Equal(p.Cost))
	assert.Equal(t, domain.ProductActive, p.Status)
}

func TestEmployee_MarkPaidOnce(t *testing.T) {
	e := domain.Employee{EmployeeID: "emp-1", Status: domain.EmployeePending}
	assert.NoError(t, e.MarkPaid())
	assert.Equal(t, domain.EmployeePaid, e.Status)
	assert.ErrorIs(t, e.MarkPaid(), apperrors.ErrAlreadyPaid)
}

func TestJob_CompleteOnce(t *testing.T) {
	j := domain.Job{JobID: "job-1", Status: domain.JobPending}
	now := time.Now()
	assert.NoError(t, j.Complete(now))
	assert.Equal(t, domain.JobDone, j.Status)
	assert.Equal(t, now, *j.CompletedAt)
	assert.ErrorIs(t, j.Complete(now), apperrors.ErrAlreadyCompleted)
}
