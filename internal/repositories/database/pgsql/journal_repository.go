package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/gl_service/internal/apperrors"
	"github.com/finbooks/gl_service/internal/core/domain"
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	"github.com/finbooks/gl_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, entry_number, entry_date, reference, description, entry_type, status, total_debits, total_credits, is_balanced, posted_at, posted_by, void_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		Reference:   m.Reference,
		Description: m.Description,
		EntryType:   domain.EntryType(m.EntryType),
		Status:      domain.EntryStatus(m.Status),
		TotalDebits: m.TotalDebits,
		TotalCredit: m.TotalCredit,
		IsBalanced:  m.IsBalanced,
		PostedAt:    m.PostedAt,
		PostedBy:    m.PostedBy,
		VoidReason:  m.VoidReason,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		LineNumber:   m.LineNumber,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
	}
}

// scanEntry scans a single entry row in entryColumns order.
func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var postedAt sql.NullTime
	var postedBy sql.NullString
	var voidReason sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.EntryType,
		&m.Status,
		&m.TotalDebits,
		&m.TotalCredit,
		&m.IsBalanced,
		&postedAt,
		&postedBy,
		&voidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}

	if postedAt.Valid {
		t := postedAt.Time
		m.PostedAt = &t
	}
	if postedBy.Valid {
		m.PostedBy = postedBy.String
	}
	if voidReason.Valid {
		m.VoidReason = voidReason.String
	}
	return m, nil
}

// nextEntryNumber claims the next sequence value for the given year inside tx.
func (r *PgxJournalRepository) nextEntryNumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	query := `
		INSERT INTO journal_entry_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = journal_entry_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to claim entry number for year %d: %w", year, err)
	}
	return domain.FormatEntryNumber(year, seq), nil
}

// lockAndCheckAccounts locks the referenced account rows and verifies they are
// all still active, so a concurrent deactivation cannot race the insert.
func (r *PgxJournalRepository) lockAndCheckAccounts(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			accountIDs = append(accountIDs, l.AccountID)
		}
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}
	for id, account := range lockedAccounts {
		if !account.IsActive {
			return fmt.Errorf("account %s is inactive: %w", id, apperrors.ErrValidation)
		}
	}
	return nil
}

// insertLines batch-inserts the full line set for an entry inside tx.
func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, line_number, description, debit_amount, credit_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.LineID,
			l.EntryID,
			l.AccountID,
			l.LineNumber,
			l.Description,
			l.DebitAmount,
			l.CreditAmount,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch: %w", err)
	}
	return nil
}

// CreateEntry assigns the next entry number for the creation year and inserts
// the entry header with its lines in one transaction.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, year int) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := r.nextEntryNumber(ctx, tx, year)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, reference, description, entry_type, status, total_debits, total_credits, is_balanced, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		entry.EntryID,
		entryNumber,
		entry.EntryDate,
		entry.Reference,
		entry.Description,
		string(entry.EntryType),
		string(entry.Status),
		entry.TotalDebits,
		entry.TotalCredit,
		entry.IsBalanced,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	if err := r.lockAndCheckAccounts(ctx, tx, lines); err != nil {
		return "", err
	}

	if err := r.insertLines(ctx, tx, lines); err != nil {
		return "", fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := toDomainEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of an entry ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, line_number, description, debit_amount, credit_amount
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.LineNumber,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, toDomainLine(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, rows.Err())
	}

	return lines, nil
}

// ListEntries retrieves entry headers matching the filter, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM journal_lines l WHERE l.entry_id = journal_entries.entry_id AND l.account_id = $%d)", argPos)
		args = append(args, *filter.AccountID)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY entry_date DESC, entry_number DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", rows.Err())
	}

	return entries, nil
}

// UpdateEntry updates scalar fields of a draft entry.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $2, reference = $3, description = $4, entry_type = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.EntryDate,
		entry.Reference,
		entry.Description,
		string(entry.EntryType),
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update for entry %s: %w", entry.EntryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.classifyDraftMiss(ctx, entry.EntryID)
	}
	return nil
}

// UpdateEntryWithLines replaces the entry's line set and totals atomically.
func (r *PgxJournalRepository) UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET entry_date = $2, reference = $3, description = $4, entry_type = $5, total_debits = $6, total_credits = $7, is_balanced = $8, last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.EntryDate,
		entry.Reference,
		entry.Description,
		string(entry.EntryType),
		entry.TotalDebits,
		entry.TotalCredit,
		entry.IsBalanced,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update for entry %s: %w", entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyDraftMiss(ctx, entry.EntryID)
	}

	if err := r.lockAndCheckAccounts(ctx, tx, lines); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete old lines for entry %s: %w", entry.EntryID, err)
	}

	if err := r.insertLines(ctx, tx, lines); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkEntryPosted transitions DRAFT -> POSTED with a conditional update.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) (bool, error) {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT' AND is_balanced = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, postedAt, postedBy)
	if err != nil {
		return false, fmt.Errorf("failed to execute post for entry %s: %w", entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		if err := r.checkEntryExists(ctx, entryID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// MarkEntryVoid transitions DRAFT -> VOID and records the reason.
func (r *PgxJournalRepository) MarkEntryVoid(ctx context.Context, entryID string, reason string, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE journal_entries
		SET status = 'VOID', void_reason = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, reason, now, userID)
	if err != nil {
		return false, fmt.Errorf("failed to execute void for entry %s: %w", entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		if err := r.checkEntryExists(ctx, entryID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// classifyDraftMiss distinguishes a missing entry from one that is no longer
// a draft after a conditional update matched no rows.
func (r *PgxJournalRepository) classifyDraftMiss(ctx context.Context, entryID string) error {
	if err := r.checkEntryExists(ctx, entryID); err != nil {
		return err
	}
	return fmt.Errorf("entry %s is not a draft: %w", entryID, apperrors.ErrConflict)
}

func (r *PgxJournalRepository) checkEntryExists(ctx context.Context, entryID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1);`, entryID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existence of entry %s: %w", entryID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return nil
}
