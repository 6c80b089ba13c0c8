package repositories

import (
	"context"
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
)

// ListEntriesFilter narrows a journal entry listing. Nil fields are not applied.
// Results are ordered by entry_date descending then entry_number descending.
type ListEntriesFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	AccountID *string
	Status    *domain.EntryStatus
	Limit     int
	Offset    int
}

// JournalReader defines read operations for journal entries and lines.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves entry headers matching the filter.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
//
// All multi-row writes are atomic: either the entry and all of its lines are
// durably stored, or nothing is.
type JournalWriter interface {
	// CreateEntry assigns the next entry number for the given creation year and
	// inserts the entry with its lines in one transaction. The referenced
	// accounts are locked and re-checked for activity inside that transaction.
	// Returns the assigned entry number.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, year int) (string, error)

	// UpdateEntry updates scalar fields of a draft entry. Lines and totals are
	// untouched. Fails with apperrors.ErrConflict if the entry is no longer a draft.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryWithLines replaces the entry's full line set and totals
	// atomically, with the same draft-only and account-lock guarantees as
	// CreateEntry.
	UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// MarkEntryPosted transitions DRAFT -> POSTED with a conditional update
	// (status must be DRAFT and the entry balanced). Returns false without
	// error when no row matched, so the caller can classify the failure.
	MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) (bool, error)

	// MarkEntryVoid transitions DRAFT -> VOID and records the reason. Returns
	// false when no row matched.
	MarkEntryVoid(ctx context.Context, entryID string, reason string, userID string, now time.Time) (bool, error)
}

// JournalRepositoryFacade combines journal read and write operations.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
