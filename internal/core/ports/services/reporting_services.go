package services

import (
	"context"
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
)

// ReportingSvcFacade defines read-only derived views over posted entries.
type ReportingSvcFacade interface {
	// GetAccountBalance sums posted debits/credits for one account and signs
	// the net by the account's normal balance.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error)

	// GetTrialBalance lists every account with nonzero posted activity.
	GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// GetAgingReport buckets open receivable/payable items by days overdue.
	// bucketFilter restricts the returned buckets when non-empty.
	GetAgingReport(ctx context.Context, asOf time.Time, bucketFilter []string) (*domain.AgingReport, error)
}
