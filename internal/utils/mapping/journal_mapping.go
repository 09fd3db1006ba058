package mapping

import (
	"sort"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelJournalEntry splits a domain entry into its header and line rows.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalLine) {
	header := models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.Date,
		Description: d.Description,
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			LineID:      l.LineID,
			EntryID:     d.EntryID,
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return header, lines
}

// ToDomainJournalEntry joins a header with its lines, ordered by line number.
func ToDomainJournalEntry(header models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     header.EntryID,
		Date:        header.EntryDate.UTC(),
		Description: header.Description,
		Reference:   header.Reference,
		Lines:       make([]domain.JournalLine, len(lines)),
		AuditFields: ToDomainAuditFields(header.AuditFields),
	}
	for i, l := range lines {
		entry.Lines[i] = domain.JournalLine{
			LineID:      l.LineID,
			EntryID:     l.EntryID,
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	sort.SliceStable(entry.Lines, func(i, j int) bool { return entry.Lines[i].LineNo < entry.Lines[j].LineNo })
	return entry
}
