package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// Valid transitions: DRAFT -> POSTED, DRAFT -> VOID. POSTED and VOID are
// terminal; a posted entry is corrected by a reversing entry, never by voiding.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "DRAFT"
	StatusPosted EntryStatus = "POSTED"
	StatusVoid   EntryStatus = "VOID"
)

// EntryType categorises how a journal entry originated.
type EntryType string

const (
	EntryManual    EntryType = "MANUAL"
	EntrySystem    EntryType = "SYSTEM" // e.g. reversing entries
	EntryRecurring EntryType = "RECURRING"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines. Totals are always computed from the lines, never
// caller-supplied.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Primary key (UUID)
	EntryNumber string          `json:"entryNumber"` // JE-<year>-<5 digit seq>, year scoped by creation time
	EntryDate   time.Time       `json:"entryDate"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	EntryType   EntryType       `json:"entryType"`
	Status      EntryStatus     `json:"status"`
	TotalDebits decimal.Decimal `json:"totalDebits"`
	TotalCredit decimal.Decimal `json:"totalCredits"`
	IsBalanced  bool            `json:"isBalanced"`
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	PostedBy    string          `json:"postedBy,omitempty"`
	VoidReason  string          `json:"voidReason,omitempty"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Loaded separately for list views
}

// JournalLine is a single debit/credit posting within an entry. Lines are
// owned by their entry and are replaced wholesale on update.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	LineNumber   int             `json:"lineNumber"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// SumLines returns the debit and credit totals for a set of lines.
func SumLines(lines []JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.DebitAmount)
		credits = credits.Add(l.CreditAmount)
	}
	return debits, credits
}

// FormatEntryNumber renders the canonical entry number for a year and sequence.
func FormatEntryNumber(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%05d", year, seq)
}
