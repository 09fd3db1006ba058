package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
	bolt "go.etcd.io/bbolt"
)

type journalRepository struct {
	boltRepository
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

// lineKey orders lines under their entry: "<entryID>/<lineNo>".
func lineKey(entryID string, lineNo int) string {
	return fmt.Sprintf("%s/%04d", entryID, lineNo)
}

// SaveEntry stores the header and its lines. Every line must reference an
// existing account.
func (r *journalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	header, lines := mapping.ToModelJournalEntry(entry)

	return r.update(ctx, func(tx *bolt.Tx) error {
		entries, err := bucket(tx, BucketJournalEntries)
		if err != nil {
			return err
		}
		lineBucket, err := bucket(tx, BucketJournalLines)
		if err != nil {
			return err
		}
		accounts, err := bucket(tx, BucketAccounts)
		if err != nil {
			return err
		}

		if exists(entries, header.EntryID) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, header.EntryID)
		}
		for _, l := range lines {
			if !exists(accounts, l.AccountCode) {
				return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, l.AccountCode)
			}
		}

		if err := putJSON(entries, header.EntryID, header); err != nil {
			return err
		}
		for _, l := range lines {
			if err := putJSON(lineBucket, lineKey(l.EntryID, l.LineNo), l); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *journalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := r.view(ctx, func(tx *bolt.Tx) error {
		entries, err := bucket(tx, BucketJournalEntries)
		if err != nil {
			return err
		}
		header, err := getJSON[models.JournalEntry](entries, entryID)
		if err != nil {
			return err
		}
		lines, err := linesOf(tx, entryID)
		if err != nil {
			return err
		}
		entry = mapping.ToDomainJournalEntry(header, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns entries inside the filter ordered by date then id.
func (r *journalRepository) ListEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	return r.listWhere(ctx, func(h models.JournalEntry) bool { return filter.Includes(h.EntryDate) })
}

func (r *journalRepository) ListEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error) {
	return r.listWhere(ctx, func(h models.JournalEntry) bool { return h.Reference == reference })
}

func (r *journalRepository) listWhere(ctx context.Context, filter func(models.JournalEntry) bool) ([]domain.JournalEntry, error) {
	var result []domain.JournalEntry
	err := r.view(ctx, func(tx *bolt.Tx) error {
		headers, err := headersWhere(tx, filter)
		if err != nil {
			return err
		}
		sortHeaders(headers, false)
		result, err = withLines(tx, headers)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListEntriesPage returns entries newest first, resuming after nextToken.
func (r *journalRepository) ListEntriesPage(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := func(models.JournalEntry) bool { return true }
	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		filter = func(h models.JournalEntry) bool {
			return pagination.After(h.EntryDate, h.EntryID, tokenDate, tokenID)
		}
	}

	var page []domain.JournalEntry
	var nextTokenVal *string
	err := r.view(ctx, func(tx *bolt.Tx) error {
		headers, err := headersWhere(tx, filter)
		if err != nil {
			return err
		}
		sortHeaders(headers, true)
		if len(headers) > limit {
			headers = headers[:limit]
			last := headers[limit-1]
			token := pagination.EncodeToken(last.EntryDate, last.EntryID)
			nextTokenVal = &token
		}
		page, err = withLines(tx, headers)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return page, nextTokenVal, nil
}

func (r *journalRepository) CountLinesByAccount(ctx context.Context, code string) (int, error) {
	var count int
	err := r.view(ctx, func(tx *bolt.Tx) error {
		var err error
		count, err = countLines(tx, code)
		return err
	})
	return count, err
}

func countLines(tx *bolt.Tx, code string) (int, error) {
	b, err := bucket(tx, BucketJournalLines)
	if err != nil {
		return 0, err
	}
	lines, err := listJSON(b, func(l models.JournalLine) bool { return l.AccountCode == code })
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

func headersWhere(tx *bolt.Tx, filter func(models.JournalEntry) bool) ([]models.JournalEntry, error) {
	b, err := bucket(tx, BucketJournalEntries)
	if err != nil {
		return nil, err
	}
	return listJSON(b, filter)
}

// sortHeaders orders by (date, id), descending when newestFirst is set.
func sortHeaders(headers []models.JournalEntry, newestFirst bool) {
	before := func(a, b models.JournalEntry) bool {
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.EntryID < b.EntryID
	}
	sort.Slice(headers, func(i, j int) bool {
		if newestFirst {
			return before(headers[j], headers[i])
		}
		return before(headers[i], headers[j])
	})
}

func withLines(tx *bolt.Tx, headers []models.JournalEntry) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		lines, err := linesOf(tx, h.EntryID)
		if err != nil {
			return nil, err
		}
		entries[i] = mapping.ToDomainJournalEntry(h, lines)
	}
	return entries, nil
}

func linesOf(tx *bolt.Tx, entryID string) ([]models.JournalLine, error) {
	b, err := bucket(tx, BucketJournalLines)
	if err != nil {
		return nil, err
	}
	prefix := []byte(entryID + "/")
	lines := []models.JournalLine{}
	c := b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		var l models.JournalLine
		if err := json.Unmarshal(v, &l); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal line %s: %w", k, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}
