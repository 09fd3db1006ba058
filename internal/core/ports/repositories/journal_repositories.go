package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines ordered by line number.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns every entry (with lines) inside filter, ordered by date then entry id.
	ListEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error)

	// ListEntriesPage returns entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesPage(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListEntriesByReference returns the entries posted for one business transaction.
	ListEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error)

	// CountLinesByAccount returns how many journal lines reference the account.
	CountLinesByAccount(ctx context.Context, code string) (int, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry and all of its lines. Entries are never updated.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
