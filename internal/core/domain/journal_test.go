package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalLine_Validate(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		name    string
		line    domain.JournalLine
		wantErr bool
	}{
		{"debit only", domain.DebitLine("1-1100", hundred), false},
		{"credit only", domain.CreditLine("4-1000", hundred), false},
		{"both zero", domain.JournalLine{AccountCode: "1-1100"}, true},
		{"both set", domain.JournalLine{AccountCode: "1-1100", Debit: hundred, Credit: hundred}, true},
		{"negative", domain.DebitLine("1-1100", hundred.Neg()), true},
		{"no account", domain.DebitLine("", hundred), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidLine)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntry_TotalsAndCodes(t *testing.T) {
	e := domain.JournalEntry{Lines: []domain.JournalLine{
		domain.DebitLine("1-1100", decimal.NewFromInt(180)),
		domain.DebitLine("5-2000", decimal.NewFromInt(20)),
		domain.CreditLine("4-1000", decimal.NewFromInt(200)),
		domain.CreditLine("1-1100", decimal.NewFromInt(0)),
	}}
	debits, credits := e.Totals()
	assert.True(t, decimal.NewFromInt(200).Equal(debits))
	assert.True(t, decimal.NewFromInt(200).Equal(credits))
	assert.Equal(t, []string{"1-1100", "4-1000", "5-2000"}, e.AccountCodes())
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2024, 5, 6, 15, 4, 5, 0, time.UTC)

	got, err := domain.ParseDate("", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), got)

	got, err = domain.ParseDate("2024-02-29", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = domain.ParseDate("29/02/2024", fallback)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalFilter_Includes(t *testing.T) {
	f := domain.JournalFilter{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, f.Includes(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, f.Includes(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, f.Includes(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, domain.JournalFilter{}.Includes(time.Now()))
}
