package services

import (
	"context"
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/finbooks/gl_service/internal/dto"
)

// JournalSvcFacade defines the journal ledger operations.
type JournalSvcFacade interface {
	// CreateEntry validates balance and account activity, assigns the next
	// entry number for the creation year, and stores the entry as a draft.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers newest first with skip/limit paging.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error)

	// UpdateEntry modifies a draft entry. Posted entries are immutable.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry transitions a balanced draft to POSTED, stamping posted_at/by.
	PostEntry(ctx context.Context, entryID string, userID string) error

	// VoidEntry transitions a draft to VOID and records the reason. Posted
	// entries cannot be voided; they must be reversed.
	VoidEntry(ctx context.Context, entryID string, reason string, userID string) error

	// CreateReversingEntry builds a new draft entry whose lines mirror a
	// posted entry with debits and credits swapped.
	CreateReversingEntry(ctx context.Context, entryID string, reverseDate time.Time, userID string) (*domain.JournalEntry, error)
}
