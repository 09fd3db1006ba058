package domain_test

import (
	"testing"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	acc, err := domain.NewAccount(" 1-1100 ", "Cash on Hand", "asset", "")
	require.NoError(t, err)
	assert.Equal(t, "1-1100", acc.Code)
	assert.Equal(t, domain.Asset, acc.AccountType)

	tests := []struct {
		name        string
		code        string
		accName     string
		accountType domain.AccountType
	}{
		{"missing code", "", "Cash", domain.Asset},
		{"missing name", "1-1100", " ", domain.Asset},
		{"unknown type", "1-1100", "Cash", "INCOME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewAccount(tt.code, tt.accName, tt.accountType, "")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestAccountType_NormalBalance(t *testing.T) {
	assert.Equal(t, domain.Debit, domain.Asset.NormalBalance())
	assert.Equal(t, domain.Debit, domain.Expense.NormalBalance())
	assert.Equal(t, domain.Credit, domain.Liability.NormalBalance())
	assert.Equal(t, domain.Credit, domain.Equity.NormalBalance())
	assert.Equal(t, domain.Credit, domain.Revenue.NormalBalance())
}

func TestDefaultChartCoversPostingAccounts(t *testing.T) {
	codes := map[string]domain.AccountType{}
	for _, acc := range domain.DefaultChart() {
		codes[acc.Code] = acc.AccountType
	}
	p := domain.DefaultPostingAccounts()
	for _, code := range []string{p.Cash, p.Bank, p.QRIS, p.Inventory} {
		assert.Equal(t, domain.Asset, codes[code], code)
	}
	assert.Equal(t, domain.Revenue, codes[p.SalesRevenue])
	assert.Equal(t, domain.Revenue, codes[p.OtherRevenue])
	for _, code := range []string{p.COGS, p.SalesDiscount, p.SalaryExpense, p.OperatingExpense} {
		assert.Equal(t, domain.Expense, codes[code], code)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	assert.Equal(t, domain.PaymentBank, domain.ParsePaymentMethod("bank"))
	assert.Equal(t, domain.PaymentQRIS, domain.ParsePaymentMethod(" QRIS "))
	assert.Equal(t, domain.PaymentCash, domain.ParsePaymentMethod("cash"))
	assert.Equal(t, domain.PaymentCash, domain.ParsePaymentMethod("crypto"))

	p := domain.DefaultPostingAccounts()
	assert.Equal(t, p.Bank, p.ForPaymentMethod(domain.PaymentBank))
	assert.Equal(t, p.Cash, p.ForPaymentMethod(domain.ParsePaymentMethod("")))
}
