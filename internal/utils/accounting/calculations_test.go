package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		debit       decimal.Decimal
		credit      decimal.Decimal
		want        decimal.Decimal
	}{
		{"asset debit", domain.Asset, d(100), d(0), d(100)},
		{"asset credit", domain.Asset, d(0), d(100), d(-100)},
		{"expense debit", domain.Expense, d(40), d(0), d(40)},
		{"liability credit", domain.Liability, d(0), d(75), d(75)},
		{"equity debit", domain.Equity, d(10), d(0), d(-10)},
		{"revenue credit", domain.Revenue, d(0), d(100), d(100)},
		{"revenue debit", domain.Revenue, d(100), d(0), d(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignedAmount(tt.accountType, tt.debit, tt.credit)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}

	_, err := SignedAmount(domain.AccountType("INCOME"), d(1), d(0))
	assert.Error(t, err)
}

func TestValidateJournalBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr error
	}{
		{"no lines", nil, apperrors.ErrEmptyEntry},
		{"all zero", []domain.JournalLine{
			{AccountCode: "1-1100"}, {AccountCode: "4-1000"},
		}, apperrors.ErrZeroValueEntry},
		{"unbalanced", []domain.JournalLine{
			domain.DebitLine("1-1100", d(100)), domain.CreditLine("4-1000", d(90)),
		}, apperrors.ErrUnbalancedEntry},
		{"both sides on one line", []domain.JournalLine{
			{AccountCode: "1-1100", Debit: d(100), Credit: d(100)},
		}, apperrors.ErrInvalidLine},
		{"negative amount", []domain.JournalLine{
			domain.DebitLine("1-1100", d(-100)), domain.CreditLine("4-1000", d(-100)),
		}, apperrors.ErrInvalidLine},
		{"zero line mixed in", []domain.JournalLine{
			domain.DebitLine("1-1100", d(100)), domain.CreditLine("4-1000", d(100)), {AccountCode: "5-2000"},
		}, apperrors.ErrInvalidLine},
		{"balanced", []domain.JournalLine{
			domain.DebitLine("1-1100", d(180)), domain.DebitLine("5-2000", d(20)),
			domain.CreditLine("4-1000", d(200)),
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalBalance(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func entry(id string, date time.Time, lines ...domain.JournalLine) domain.JournalEntry {
	for i := range lines {
		lines[i].LineNo = i + 1
		lines[i].EntryID = id
	}
	return domain.JournalEntry{EntryID: id, Date: date, Lines: lines}
}

func TestAccountLedger_RunningBalanceMatchesTotal(t *testing.T) {
	cash := domain.Account{Code: "1-1100", AccountType: domain.Asset}
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Deliberately out of order: the ledger must sort by date then id.
	entries := []domain.JournalEntry{
		entry("0003", day2, domain.CreditLine("1-1100", d(30)), domain.DebitLine("6-3000", d(30))),
		entry("0002", day1, domain.CreditLine("1-1100", d(50)), domain.DebitLine("1-1300", d(50))),
		entry("0001", day1, domain.DebitLine("1-1100", d(200)), domain.CreditLine("4-1000", d(200))),
	}

	rows, err := AccountLedger(cash, entries)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "0001", rows[0].EntryID)
	assert.Equal(t, "0002", rows[1].EntryID)
	assert.Equal(t, "0003", rows[2].EntryID)
	assert.True(t, d(200).Equal(rows[0].RunningBalance))
	assert.True(t, d(150).Equal(rows[1].RunningBalance))
	assert.True(t, d(120).Equal(rows[2].RunningBalance))

	total, err := TotalBalance(cash, entries)
	require.NoError(t, err)
	assert.True(t, total.Equal(rows[len(rows)-1].RunningBalance))

	// The caller's slice order is untouched.
	assert.Equal(t, "0003", entries[0].EntryID)
}

func TestTotalBalance_SignConvention(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	asset := domain.Account{Code: "A", AccountType: domain.Asset}
	revenue := domain.Account{Code: "R", AccountType: domain.Revenue}

	debitAsset := []domain.JournalEntry{entry("1", day, domain.DebitLine("A", d(100)), domain.CreditLine("R", d(100)))}
	got, err := TotalBalance(asset, debitAsset)
	require.NoError(t, err)
	assert.True(t, d(100).Equal(got))

	got, err = TotalBalance(revenue, debitAsset)
	require.NoError(t, err)
	assert.True(t, d(100).Equal(got))

	debitRevenue := []domain.JournalEntry{entry("2", day, domain.DebitLine("R", d(100)), domain.CreditLine("A", d(100)))}
	got, err = TotalBalance(revenue, debitRevenue)
	require.NoError(t, err)
	assert.True(t, d(-100).Equal(got))
}

func TestBalances(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	accounts := []domain.Account{
		{Code: "1-1100", AccountType: domain.Asset},
		{Code: "4-1000", AccountType: domain.Revenue},
		{Code: "6-2000", AccountType: domain.Expense},
	}
	entries := []domain.JournalEntry{
		entry("1", day, domain.DebitLine("1-1100", d(500)), domain.CreditLine("4-1000", d(500))),
	}

	balances, err := Balances(accounts, entries)
	require.NoError(t, err)
	assert.True(t, d(500).Equal(balances["1-1100"]))
	assert.True(t, d(500).Equal(balances["4-1000"]))
	assert.True(t, balances["6-2000"].IsZero())

	_, err = Balances(accounts[:1], entries)
	assert.Error(t, err)
}

func TestFilterEntries(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{{EntryID: "jan", Date: jan}, {EntryID: "feb", Date: feb}}

	got := FilterEntries(entries, domain.JournalFilter{To: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)})
	require.Len(t, got, 1)
	assert.Equal(t, "jan", got[0].EntryID)

	got = FilterEntries(entries, domain.JournalFilter{From: feb})
	require.Len(t, got, 1)
	assert.Equal(t, "feb", got[0].EntryID)

	assert.Len(t, FilterEntries(entries, domain.JournalFilter{}), 2)
}
