package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// JournalEntry represents a journal entry header row. Totals are denormalized
// from the lines at write time.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	EntryNumber string          `db:"entry_number"`
	EntryDate   time.Time       `db:"entry_date"`
	Reference   string          `db:"reference"`
	Description string          `db:"description"`
	EntryType   string          `db:"entry_type"`
	Status      EntryStatus     `db:"status"`
	TotalDebits decimal.Decimal `db:"total_debits"`
	TotalCredit decimal.Decimal `db:"total_credits"`
	IsBalanced  bool            `db:"is_balanced"`
	PostedAt    *time.Time      `db:"posted_at"` // Nullable
	PostedBy    string          `db:"posted_by"` // Nullable
	VoidReason  string          `db:"void_reason"`
	AuditFields
}

// JournalLine represents a single debit or credit line within an entry.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	LineNumber   int             `db:"line_number"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
}
