package dto

import (
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one debit/credit line of a new entry. Amounts default to
// zero; a line conventionally carries either a debit or a credit, but both
// non-zero is accepted (matching the upstream services this replaces).
type CreateLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	LineNumber   int             `json:"lineNumber" binding:"required,min=1"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount" binding:"money2"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"money2"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
// Totals are computed from the lines server-side.
type CreateEntryRequest struct {
	EntryDate   time.Time           `json:"entryDate" binding:"required"`
	Reference   string              `json:"reference" binding:"max=100"`
	Description string              `json:"description" binding:"required"`
	EntryType   domain.EntryType    `json:"entryType" binding:"required,oneof=MANUAL SYSTEM RECURRING"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest defines the data allowed for updating a draft entry.
// When Lines is non-nil the full line set is replaced atomically and totals
// are recomputed; when nil only the scalar fields change.
type UpdateEntryRequest struct {
	EntryDate   *time.Time           `json:"entryDate"`
	Reference   *string              `json:"reference" binding:"omitempty,max=100"`
	Description *string              `json:"description"`
	EntryType   *domain.EntryType    `json:"entryType" binding:"omitempty,oneof=MANUAL SYSTEM RECURRING"`
	Lines       *[]CreateLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// VoidEntryRequest carries the reason recorded when voiding a draft entry.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseEntryRequest carries the date for a reversing entry.
type ReverseEntryRequest struct {
	ReverseDate time.Time `json:"reverseDate" binding:"required"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	LineNumber   int             `json:"lineNumber"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Reference    string          `json:"reference"`
	Description  string          `json:"description"`
	EntryType    domain.EntryType `json:"entryType"`
	Status       domain.EntryStatus `json:"status"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	IsBalanced   bool            `json:"isBalanced"`
	PostedAt     *time.Time      `json:"postedAt,omitempty"`
	PostedBy     string          `json:"postedBy,omitempty"`
	VoidReason   string          `json:"voidReason,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
	Lines        []LineResponse  `json:"lines,omitempty"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	DateFrom  *time.Time          `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time          `form:"dateTo" time_format:"2006-01-02"`
	AccountID *string             `form:"accountID"`
	Status    *domain.EntryStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	Limit     int                 `form:"limit,default=50"`
	Offset    int                 `form:"offset,default=0"`
}

// ListEntriesResponse wraps the list of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse DTO.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		LineNumber:   l.LineNumber,
		Description:  l.Description,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		Reference:    e.Reference,
		Description:  e.Description,
		EntryType:    e.EntryType,
		Status:       e.Status,
		TotalDebits:  e.TotalDebits,
		TotalCredits: e.TotalCredit,
		IsBalanced:   e.IsBalanced,
		PostedAt:     e.PostedAt,
		PostedBy:     e.PostedBy,
		VoidReason:   e.VoidReason,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToLineResponse(&l)
		}
	}
	return resp
}

// ToListEntriesResponse converts a slice of domain.JournalEntry to the list DTO.
func ToListEntriesResponse(entries []domain.JournalEntry) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: res}
}
