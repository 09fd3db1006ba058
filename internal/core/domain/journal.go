package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for entry dates.
const DateLayout = "2006-01-02"

// TransactionType indicates whether a journal line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// JournalLine is one debit or credit against a single account.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// DebitLine and CreditLine are shorthands used by the posting recipes.
func DebitLine(accountCode string, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountCode: accountCode, Debit: amount, Credit: decimal.Zero}
}

func CreditLine(accountCode string, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountCode: accountCode, Debit: decimal.Zero, Credit: amount}
}

// IsZero reports whether the line moves nothing on either side.
func (l JournalLine) IsZero() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// Side returns the side carrying the line's amount.
func (l JournalLine) Side() TransactionType {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Validate checks that exactly one side is positive and neither is negative.
func (l JournalLine) Validate() error {
	if strings.TrimSpace(l.AccountCode) == "" {
		return fmt.Errorf("%w: line %d has no account code", apperrors.ErrInvalidLine, l.LineNo)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: line %d (%s) has a negative amount", apperrors.ErrInvalidLine, l.LineNo, l.AccountCode)
	}
	if l.Debit.IsPositive() == l.Credit.IsPositive() {
		return fmt.Errorf("%w: line %d (%s) has debit %s and credit %s",
			apperrors.ErrInvalidLine, l.LineNo, l.AccountCode, l.Debit.String(), l.Credit.String())
	}
	return nil
}

// JournalEntry is a balanced group of lines recognised on one date.
// Entries are append-only: once saved they are never changed.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// Totals returns the debit and credit sums of the entry.
func (e JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// AccountCodes returns the distinct account codes used by the entry, sorted.
func (e JournalEntry) AccountCodes() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	codes := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	sort.Strings(codes)
	return codes
}

// JournalFilter restricts entries to an inclusive date range. Zero bounds are open.
type JournalFilter struct {
	From time.Time
	To   time.Time
}

// Includes reports whether date falls inside the filter.
func (f JournalFilter) Includes(date time.Time) bool {
	d := NormalizeDate(date)
	if !f.From.IsZero() && d.Before(NormalizeDate(f.From)) {
		return false
	}
	if !f.To.IsZero() && d.After(NormalizeDate(f.To)) {
		return false
	}
	return true
}

// NormalizeDate truncates t to its calendar date at UTC midnight.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string. An empty string yields fallback.
func ParseDate(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NormalizeDate(fallback), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return t, nil
}
