package repositories

import (
	"context"
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only aggregation queries over posted entries.
// Draft and void entries never contribute.
type ReportingRepository interface {
	// GetAccountActivity sums posted debit and credit amounts for one account,
	// bounded by entry date when asOf is non-nil.
	GetAccountActivity(ctx context.Context, accountID string, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// GetTrialBalanceData returns per-account posted debit/credit totals as of a
	// date, one row per account with nonzero activity, ordered by account code.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// OpenItemSource supplies receivable/payable open items for aging reports.
// The records are owned by the AP/AR services; the ledger only reads them.
type OpenItemSource interface {
	// ListOpenItems returns items with an outstanding amount (total > paid).
	ListOpenItems(ctx context.Context) ([]domain.OpenItem, error)
}
