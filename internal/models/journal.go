package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the header row of a journal entry.
type JournalEntry struct {
	EntryID     string    `db:"entry_id" json:"entryID"`
	EntryDate   time.Time `db:"entry_date" json:"entryDate"`
	Description string    `db:"description" json:"description"`
	Reference   string    `db:"reference" json:"reference"`
	AuditFields
}

// JournalLine is one debit or credit row of an entry.
type JournalLine struct {
	LineID      string          `db:"line_id" json:"lineID"`
	EntryID     string          `db:"entry_id" json:"entryID"`
	LineNo      int             `db:"line_no" json:"lineNo"`
	AccountCode string          `db:"account_code" json:"accountCode"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
}
