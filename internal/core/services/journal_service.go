package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
)

const defaultJournalPageSize = 20

// journalService validates and appends journal entries.
type journalService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewJournalService creates a new JournalService.
func NewJournalService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostEntry posts a single entry in its own unit of work.
func (s *journalService) PostEntry(ctx context.Context, draft domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		posted, err = s.PostEntryInTx(ctx, repos, draft, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// PostEntryInTx checks the entry against the double-entry rules and the chart,
// assigns identifiers and appends it through repos.
func (s *journalService) PostEntryInTx(ctx context.Context, repos portsrepo.RepositoryProvider, draft domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	entry := draft
	entry.Lines = make([]domain.JournalLine, len(draft.Lines))
	for i, line := range draft.Lines {
		line.LineNo = i + 1
		line.AccountCode = strings.TrimSpace(line.AccountCode)
		entry.Lines[i] = line
	}

	if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
		return nil, err
	}

	codes := entry.AccountCodes()
	accounts, err := repos.AccountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal entry")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	var missing []string
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, strings.Join(missing, ", "))
	}

	now := s.now()
	entryID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entry id: %w", err)
	}
	entry.EntryID = entryID.String()
	if entry.Date.IsZero() {
		entry.Date = now
	}
	entry.Date = domain.NormalizeDate(entry.Date)
	entry.Description = strings.TrimSpace(entry.Description)
	entry.Reference = strings.TrimSpace(entry.Reference)
	if entry.Reference == "" {
		entry.Reference = domain.NewReference(domain.ManualRefPrefix, now)
	}
	entry.AuditFields = domain.NewAuditFields(userID, now)
	for i := range entry.Lines {
		entry.Lines[i].EntryID = entry.EntryID
		entry.Lines[i].LineID = uuid.NewString()
	}

	if err := repos.JournalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("reference", entry.Reference))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference", entry.Reference),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// GetEntry retrieves a journal entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	entry, err := s.repos.JournalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, PersistenceError(fmt.Errorf("failed to find journal entry %s: %w", entryID, err))
	}
	return entry, nil
}

// ListEntries returns a page of entries, newest first. A reference filter
// returns every entry of that business transaction on one page.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	if ref := strings.TrimSpace(params.Reference); ref != "" {
		entries, err := s.ListEntriesByReference(ctx, ref)
		if err != nil {
			return nil, err
		}
		return &dto.ListJournalsResponse{Journals: dto.ToJournalResponses(entries)}, nil
	}

	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, next, err := s.repos.JournalRepo.ListEntriesPage(ctx, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, PersistenceError(fmt.Errorf("failed to list journal entries: %w", err))
	}
	return &dto.ListJournalsResponse{
		Journals:  dto.ToJournalResponses(entries),
		NextToken: next,
	}, nil
}

// ListEntriesByReference returns the entries posted for one business transaction.
func (s *journalService) ListEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	entries, err := s.repos.JournalRepo.ListEntriesByReference(ctx, reference)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries by reference", slog.String("reference", reference))
		return nil, PersistenceError(fmt.Errorf("failed to list journal entries: %w", err))
	}
	return entries, nil
}
