package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool, db DBTX) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: newBaseRepository(pool, db)}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const (
	entryColumns = `e.entry_id, e.entry_date, e.description, e.reference, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`
	lineColumns  = `l.line_id, l.entry_id, l.line_no, l.account_code, l.debit, l.credit`
)

// SaveEntry inserts the entry header and all of its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	header, lines := mapping.ToModelJournalEntry(entry)

	return r.atomic(ctx, func(db DBTX) error {
		entryQuery := `
			INSERT INTO journal_entries (entry_id, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err := db.Exec(ctx, entryQuery,
			header.EntryID,
			header.EntryDate,
			header.Description,
			header.Reference,
			header.CreatedAt,
			header.CreatedBy,
			header.LastUpdatedAt,
			header.LastUpdatedBy,
		)
		if err != nil {
			return mapError(err, "failed to insert journal entry "+header.EntryID)
		}

		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO journal_lines (line_id, entry_id, line_no, account_code, debit, credit)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, l := range lines {
			batch.Queue(lineQuery, l.LineID, l.EntryID, l.LineNo, l.AccountCode, l.Debit, l.Credit)
		}

		br := db.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: entry %s", apperrors.ErrUnknownAccount, header.EntryID)
			}
			return mapError(err, "failed to insert lines for journal entry "+header.EntryID)
		}
		return nil
	})
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `, ` + lineColumns + `
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.entry_id = $1
		ORDER BY l.line_no;
	`
	entries, err := r.queryEntriesWithLines(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

// ListEntries returns entries inside the filter ordered by date then id.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `, ` + lineColumns + `
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE ($1::date IS NULL OR e.entry_date >= $1)
		  AND ($2::date IS NULL OR e.entry_date <= $2)
		ORDER BY e.entry_date, e.entry_id, l.line_no;
	`
	var from, to any
	if !filter.From.IsZero() {
		from = domain.NormalizeDate(filter.From)
	}
	if !filter.To.IsZero() {
		to = domain.NormalizeDate(filter.To)
	}
	return r.queryEntriesWithLines(ctx, query, from, to)
}

// ListEntriesByReference returns every entry posted under a business reference.
func (r *PgxJournalRepository) ListEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `, ` + lineColumns + `
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.reference = $1
		ORDER BY e.entry_date, e.entry_id, l.line_no;
	`
	return r.queryEntriesWithLines(ctx, query, reference)
}

// ListEntriesPage retrieves a page of entries, newest first, using token-based pagination.
// It returns the entries, a token for the next page (if any), and an error.
func (r *PgxJournalRepository) ListEntriesPage(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.entry_date, e.description, e.reference, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM journal_entries e
	`
	orderByClause := `ORDER BY e.entry_date DESC, e.entry_id DESC`

	args := []any{}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` WHERE (e.entry_date, e.entry_id) < ($1, $2)`
		args = append(args, lastDate, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to query journal entries page")
	}
	headers := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		var h models.JournalEntry
		if err := rows.Scan(
			&h.EntryID,
			&h.EntryDate,
			&h.Description,
			&h.Reference,
			&h.CreatedAt,
			&h.CreatedBy,
			&h.LastUpdatedAt,
			&h.LastUpdatedBy,
		); err != nil {
			rows.Close()
			return nil, nil, mapError(err, "failed to scan journal entry row")
		}
		headers = append(headers, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "error iterating journal entry rows")
	}

	var nextTokenVal *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryID)
		nextTokenVal = &token
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	linesByEntry, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, linesByEntry[h.EntryID])
	}
	return entries, nextTokenVal, nil
}

// CountLinesByAccount returns how many journal lines reference an account.
func (r *PgxJournalRepository) CountLinesByAccount(ctx context.Context, code string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_code = $1;`, code).Scan(&count)
	if err != nil {
		return 0, mapError(err, "failed to count journal lines for account "+code)
	}
	return count, nil
}

func (r *PgxJournalRepository) linesFor(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines l
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_no;
	`
	rows, err := r.db.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapError(err, "failed to query journal lines")
	}
	defer rows.Close()

	result := make(map[string][]models.JournalLine, len(entryIDs))
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.LineNo, &l.AccountCode, &l.Debit, &l.Credit); err != nil {
			return nil, mapError(err, "failed to scan journal line row")
		}
		result[l.EntryID] = append(result[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating journal line rows")
	}
	return result, nil
}

// queryEntriesWithLines folds joined entry/line rows into entries. Rows must
// arrive grouped by entry.
func (r *PgxJournalRepository) queryEntriesWithLines(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query journal entries")
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	var current *models.JournalEntry
	var currentLines []models.JournalLine
	flush := func() {
		if current != nil {
			entries = append(entries, mapping.ToDomainJournalEntry(*current, currentLines))
		}
	}

	for rows.Next() {
		var h models.JournalEntry
		var l models.JournalLine
		err := rows.Scan(
			&h.EntryID,
			&h.EntryDate,
			&h.Description,
			&h.Reference,
			&h.CreatedAt,
			&h.CreatedBy,
			&h.LastUpdatedAt,
			&h.LastUpdatedBy,
			&l.LineID,
			&l.EntryID,
			&l.LineNo,
			&l.AccountCode,
			&l.Debit,
			&l.Credit,
		)
		if err != nil {
			return nil, mapError(err, "failed to scan journal row")
		}
		if current == nil || current.EntryID != h.EntryID {
			flush()
			current = &h
			currentLines = nil
		}
		currentLines = append(currentLines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating journal rows")
	}
	flush()
	return entries, nil
}
