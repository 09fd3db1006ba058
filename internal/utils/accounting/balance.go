package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortEntries orders entries by date, then by entry id. Entry ids are time
// ordered, so ties on the same date keep insertion order.
func SortEntries(entries []domain.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := domain.NormalizeDate(entries[i].Date), domain.NormalizeDate(entries[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return entries[i].EntryID < entries[j].EntryID
	})
}

func sortedCopy(entries []domain.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(entries))
	copy(out, entries)
	SortEntries(out)
	return out
}

// AccountLedger folds every line that touches account into running balance rows.
func AccountLedger(account domain.Account, entries []domain.JournalEntry) ([]domain.LedgerRow, error) {
	rows := make([]domain.LedgerRow, 0)
	running := decimal.Zero

	for _, entry := range sortedCopy(entries) {
		lines := make([]domain.JournalLine, len(entry.Lines))
		copy(lines, entry.Lines)
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].LineNo < lines[j].LineNo })

		for _, line := range lines {
			if line.AccountCode != account.Code {
				continue
			}
			delta, err := CalculateSignedAmount(line, account.AccountType)
			if err != nil {
				return nil, err
			}
			running = running.Add(delta)
			rows = append(rows, domain.LedgerRow{
				EntryID:        entry.EntryID,
				LineID:         line.LineID,
				Date:           entry.Date,
				Description:    entry.Description,
				Reference:      entry.Reference,
				Debit:          line.Debit,
				Credit:         line.Credit,
				RunningBalance: running,
			})
		}
	}
	return rows, nil
}

// TotalBalance sums the signed effect of every line touching account.
func TotalBalance(account domain.Account, entries []domain.JournalEntry) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountCode != account.Code {
				continue
			}
			delta, err := CalculateSignedAmount(line, account.AccountType)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(delta)
		}
	}
	return total, nil
}

// Balances computes the total balance of every account in one pass over the journal.
// Accounts without lines are present with a zero balance.
func Balances(accounts []domain.Account, entries []domain.JournalEntry) (map[string]decimal.Decimal, error) {
	types := make(map[string]domain.AccountType, len(accounts))
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		types[acc.Code] = acc.AccountType
		balances[acc.Code] = decimal.Zero
	}

	for _, entry := range entries {
		for _, line := range entry.Lines {
			accountType, ok := types[line.AccountCode]
			if !ok {
				return nil, fmt.Errorf("entry %s references account %s which is not in the chart", entry.EntryID, line.AccountCode)
			}
			delta, err := CalculateSignedAmount(line, accountType)
			if err != nil {
				return nil, err
			}
			balances[line.AccountCode] = balances[line.AccountCode].Add(delta)
		}
	}
	return balances, nil
}

// SideTotals returns per-account raw debit and credit sums.
func SideTotals(entries []domain.JournalEntry) (map[string]decimal.Decimal, map[string]decimal.Decimal) {
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			debits[line.AccountCode] = debits[line.AccountCode].Add(line.Debit)
			credits[line.AccountCode] = credits[line.AccountCode].Add(line.Credit)
		}
	}
	return debits, credits
}

// FilterEntries keeps the entries whose date falls inside filter.
func FilterEntries(entries []domain.JournalEntry, filter domain.JournalFilter) []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if filter.Includes(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
