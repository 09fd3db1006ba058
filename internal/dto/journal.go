package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual journal entry.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateJournalRequest defines the data needed to post a manual journal entry.
// Line level rules are enforced by the posting service so that every caller
// gets the same errors.
type CreateJournalRequest struct {
	Date        string               `json:"date"` // YYYY-MM-DD, defaults to today
	Description string               `json:"description" binding:"required"`
	Reference   string               `json:"reference"`
	Lines       []JournalLineRequest `json:"lines"`
}

// ToDraftEntry converts the request into an unsaved journal entry.
func (r CreateJournalRequest) ToDraftEntry(now time.Time) (domain.JournalEntry, error) {
	date, err := domain.ParseDate(r.Date, now)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			LineNo:      i + 1,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return domain.JournalEntry{
		Date:        date,
		Description: r.Description,
		Reference:   r.Reference,
		Lines:       lines,
	}, nil
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	EntryID     string                `json:"entryID"`
	Date        string                `json:"date"`
	Description string                `json:"description"`
	Reference   string                `json:"reference"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	debit, credit := e.Totals()
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalResponse{
		EntryID:     e.EntryID,
		Date:        e.Date.Format(domain.DateLayout),
		Description: e.Description,
		Reference:   e.Reference,
		TotalDebit:  debit,
		TotalCredit: credit,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToJournalResponses converts a slice of entries.
func ToJournalResponses(entries []domain.JournalEntry) []JournalResponse {
	res := make([]JournalResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalResponse(&entries[i])
	}
	return res
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
	Reference string `form:"reference"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
