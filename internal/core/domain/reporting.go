package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the posted activity of one account, optionally as of a date.
// Net is signed by the account's normal balance: debit-normal accounts report
// debits minus credits, credit-normal the opposite.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AsOfDate    *time.Time      `json:"asOfDate,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalanceRow is one account's debit/credit activity in a trial balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account with nonzero posted activity as of a date.
// TotalDebit must equal TotalCredit exactly; this follows from the per-entry
// balance invariant.
type TrialBalance struct {
	AsOfDate    time.Time         `json:"asOfDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// OpenItem is an invoice-like receivable/payable record supplied by the AP/AR
// collaborators. The ledger core treats these as read-only input for aging.
type OpenItem struct {
	ItemID      string          `json:"itemID"`
	DueDate     time.Time       `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
}

// Aging bucket keys, by days overdue relative to the report date.
const (
	BucketCurrent = "current" // not yet due
	Bucket1To30   = "1_30"
	Bucket31To60  = "31_60"
	Bucket61To90  = "61_90"
	BucketOver90  = "over_90"
)

// AgingBucketKeys lists the bucket keys in ascending overdue order.
var AgingBucketKeys = []string{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// AgingBucket accumulates outstanding amount and item count for one bucket.
type AgingBucket struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// AgingReport classifies open items into overdue buckets as of a date.
type AgingReport struct {
	AsOfDate         time.Time              `json:"asOfDate"`
	Buckets          map[string]AgingBucket `json:"buckets"`
	TotalOutstanding decimal.Decimal        `json:"totalOutstanding"`
	Count            int                    `json:"count"`
}

// ClassifyOverdue returns the bucket key for an item that is daysOverdue past
// its due date (zero or negative means not yet due).
func ClassifyOverdue(daysOverdue int) string {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}
