package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/gl_service/internal/apperrors"
	"github.com/finbooks/gl_service/internal/core/domain"
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
	"github.com/finbooks/gl_service/internal/dto"
	"github.com/google/uuid"
)

var (
	// ErrEntryUnbalanced is returned when total debits do not equal total credits.
	ErrEntryUnbalanced = fmt.Errorf("journal entry debits do not equal credits: %w", apperrors.ErrValidation)
	// ErrInvalidAccount is returned when a line references an unknown account.
	ErrInvalidAccount = fmt.Errorf("journal line references an unknown account: %w", apperrors.ErrValidation)
	// ErrInactiveAccount is returned when a line references a deactivated account.
	ErrInactiveAccount = fmt.Errorf("journal line references an inactive account: %w", apperrors.ErrValidation)
	// ErrEntryImmutable is returned when modifying an entry that is not a draft.
	ErrEntryImmutable = fmt.Errorf("only draft entries can be modified: %w", apperrors.ErrConflict)
	// ErrAlreadyPosted is returned when posting an entry that is already posted.
	ErrAlreadyPosted = fmt.Errorf("journal entry is already posted: %w", apperrors.ErrConflict)
	// ErrPostVoid is returned when posting a voided entry.
	ErrPostVoid = fmt.Errorf("voided journal entry cannot be posted: %w", apperrors.ErrConflict)
	// ErrVoidPosted is returned when voiding a posted entry; posted entries are
	// corrected with a reversing entry instead.
	ErrVoidPosted = fmt.Errorf("posted journal entry cannot be voided, create a reversing entry: %w", apperrors.ErrConflict)
	// ErrAlreadyVoid is returned when voiding an entry that is already void.
	ErrAlreadyVoid = fmt.Errorf("journal entry is already void: %w", apperrors.ErrConflict)
	// ErrNotPosted is returned when reversing an entry that is not posted.
	ErrNotPosted = fmt.Errorf("only posted entries can be reversed: %w", apperrors.ErrConflict)
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lr.AccountID,
			LineNumber:   lr.LineNumber,
			Description:  lr.Description,
			DebitAmount:  lr.DebitAmount,
			CreditAmount: lr.CreditAmount,
		}
	}

	if err := s.validateLines(ctx, lines); err != nil {
		return nil, err
	}

	totalDebits, totalCredits := domain.SumLines(lines)
	if !totalDebits.Equal(totalCredits) {
		s.LogDebug(ctx, "Rejected unbalanced journal entry",
			slog.String("total_debits", totalDebits.String()),
			slog.String("total_credits", totalCredits.String()))
		return nil, fmt.Errorf("debits %s != credits %s: %w", totalDebits, totalCredits, ErrEntryUnbalanced)
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Reference:   req.Reference,
		Description: req.Description,
		EntryType:   req.EntryType,
		Status:      domain.StatusDraft,
		TotalDebits: totalDebits,
		TotalCredit: totalCredits,
		IsBalanced:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entryNumber, err := s.journalRepo.CreateEntry(ctx, entry, lines, now.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry",
			slog.String("entry_id", entryID))
		return nil, err
	}
	entry.EntryNumber = entryNumber
	entry.Lines = lines

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entryNumber))
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines",
			slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	filter := portsrepo.ListEntriesFilter{
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		AccountID: params.AccountID,
		Status:    params.Status,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	entries, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry for update",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		s.LogDebug(ctx, "Update rejected for non-draft entry",
			slog.String("entry_id", entryID),
			slog.String("status", string(entry.Status)))
		return nil, fmt.Errorf("entry %s is %s: %w", entryID, entry.Status, ErrEntryImmutable)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.EntryType != nil {
		entry.EntryType = *req.EntryType
	}

	now := time.Now()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if req.Lines == nil {
		if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
			return nil, s.draftWriteError(ctx, err, entryID)
		}
		return s.GetEntryByID(ctx, entryID)
	}

	lines := make([]domain.JournalLine, len(*req.Lines))
	for i, lr := range *req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lr.AccountID,
			LineNumber:   lr.LineNumber,
			Description:  lr.Description,
			DebitAmount:  lr.DebitAmount,
			CreditAmount: lr.CreditAmount,
		}
	}
	if err := s.validateLines(ctx, lines); err != nil {
		return nil, err
	}
	totalDebits, totalCredits := domain.SumLines(lines)
	if !totalDebits.Equal(totalCredits) {
		return nil, fmt.Errorf("debits %s != credits %s: %w", totalDebits, totalCredits, ErrEntryUnbalanced)
	}
	entry.TotalDebits = totalDebits
	entry.TotalCredit = totalCredits
	entry.IsBalanced = true

	if err := s.journalRepo.UpdateEntryWithLines(ctx, *entry, lines); err != nil {
		return nil, s.draftWriteError(ctx, err, entryID)
	}

	s.LogInfo(ctx, "Journal entry updated",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)))
	return s.GetEntryByID(ctx, entryID)
}

func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) error {
	now := time.Now()
	ok, err := s.journalRepo.MarkEntryPosted(ctx, entryID, userID, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post journal entry",
				slog.String("entry_id", entryID))
		}
		return err
	}
	if !ok {
		return s.classifyPostFailure(ctx, entryID)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("posted_by", userID))
	return nil
}

func (s *journalService) VoidEntry(ctx context.Context, entryID string, reason string, userID string) error {
	now := time.Now()
	ok, err := s.journalRepo.MarkEntryVoid(ctx, entryID, reason, userID, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to void journal entry",
				slog.String("entry_id", entryID))
		}
		return err
	}
	if !ok {
		return s.classifyVoidFailure(ctx, entryID)
	}

	s.LogInfo(ctx, "Journal entry voided",
		slog.String("entry_id", entryID),
		slog.String("voided_by", userID))
	return nil
}

func (s *journalService) CreateReversingEntry(ctx context.Context, entryID string, reverseDate time.Time, userID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.StatusPosted {
		s.LogDebug(ctx, "Reversal rejected for non-posted entry",
			slog.String("entry_id", entryID),
			slog.String("status", string(original.Status)))
		return nil, fmt.Errorf("entry %s is %s: %w", entryID, original.Status, ErrNotPosted)
	}

	req := dto.CreateEntryRequest{
		EntryDate:   reverseDate,
		Reference:   "REV-" + original.EntryNumber,
		Description: "Reversing entry for " + original.EntryNumber,
		EntryType:   domain.EntrySystem,
		Lines:       make([]dto.CreateLineRequest, len(original.Lines)),
	}
	for i, l := range original.Lines {
		req.Lines[i] = dto.CreateLineRequest{
			AccountID:    l.AccountID,
			LineNumber:   l.LineNumber,
			Description:  "Reversal of " + original.EntryNumber,
			DebitAmount:  l.CreditAmount,
			CreditAmount: l.DebitAmount,
		}
	}

	reversal, err := s.CreateEntry(ctx, req, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to create reversing entry",
			slog.String("original_entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Reversing entry created",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_entry_number", reversal.EntryNumber))
	return reversal, nil
}

// validateLines checks amount shape and account validity for a full line set.
func (s *journalService) validateLines(ctx context.Context, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
			return fmt.Errorf("line %d has a negative amount: %w", l.LineNumber, apperrors.ErrValidation)
		}
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			accountIDs = append(accountIDs, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up line accounts",
			slog.Int("account_count", len(accountIDs)))
		return err
	}
	for _, l := range lines {
		account, ok := accounts[l.AccountID]
		if !ok {
			return fmt.Errorf("line %d account %s: %w", l.LineNumber, l.AccountID, ErrInvalidAccount)
		}
		if !account.IsActive {
			return fmt.Errorf("line %d account %s: %w", l.LineNumber, l.AccountID, ErrInactiveAccount)
		}
	}
	return nil
}

// draftWriteError maps a repository conflict on a draft-only write to the
// immutability sentinel; everything else passes through.
func (s *journalService) draftWriteError(ctx context.Context, err error, entryID string) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return fmt.Errorf("entry %s: %w", entryID, ErrEntryImmutable)
	}
	s.LogError(ctx, err, "Failed to update journal entry",
		slog.String("entry_id", entryID))
	return err
}

// classifyPostFailure refetches the entry after a no-op conditional update to
// return the precise reason posting was refused.
func (s *journalService) classifyPostFailure(ctx context.Context, entryID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	switch entry.Status {
	case domain.StatusPosted:
		return fmt.Errorf("entry %s: %w", entryID, ErrAlreadyPosted)
	case domain.StatusVoid:
		return fmt.Errorf("entry %s: %w", entryID, ErrPostVoid)
	}
	if !entry.IsBalanced {
		return fmt.Errorf("entry %s: %w", entryID, ErrEntryUnbalanced)
	}
	return fmt.Errorf("entry %s could not be posted: %w", entryID, apperrors.ErrConflict)
}

// classifyVoidFailure mirrors classifyPostFailure for void transitions.
func (s *journalService) classifyVoidFailure(ctx context.Context, entryID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	switch entry.Status {
	case domain.StatusPosted:
		return fmt.Errorf("entry %s: %w", entryID, ErrVoidPosted)
	case domain.StatusVoid:
		return fmt.Errorf("entry %s: %w", entryID, ErrAlreadyVoid)
	}
	return fmt.Errorf("entry %s could not be voided: %w", entryID, apperrors.ErrConflict)
}
