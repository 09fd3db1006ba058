package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// ListEntriesByReference returns the entries posted for a business transaction.
	ListEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines the posting operations
type JournalWriterSvc interface {
	// PostEntry validates and appends an entry in its own unit of work.
	PostEntry(ctx context.Context, draft domain.JournalEntry, userID string) (*domain.JournalEntry, error)

	// PostEntryInTx validates and appends an entry using repositories bound to
	// the caller's transaction.
	PostEntryInTx(ctx context.Context, repos portsrepo.RepositoryProvider, draft domain.JournalEntry, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
