package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finbooks/gl_service/internal/apperrors"
	"github.com/finbooks/gl_service/internal/core/domain"
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	openItems     portsrepo.OpenItemSource
}

// NewReportingService creates a new reporting service
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade, openItems portsrepo.OpenItemSource) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		openItems:     openItems,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	debit, credit, err := s.reportingRepo.GetAccountActivity(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity",
			slog.String("account_id", accountID))
		return nil, err
	}

	// Net is signed by the account's normal balance side.
	net := debit.Sub(credit)
	if account.NormalBalance == domain.CreditNormal {
		net = credit.Sub(debit)
	}

	return &domain.AccountBalance{
		AccountID:   account.AccountID,
		AccountCode: account.AccountCode,
		AsOfDate:    asOf,
		Debit:       debit,
		Credit:      credit,
		Net:         net,
	}, nil
}

func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance",
			slog.Time("as_of", asOf))
		return nil, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	if rows == nil {
		rows = []domain.TrialBalanceRow{}
	}

	s.LogDebug(ctx, "Trial balance computed",
		slog.Int("account_count", len(rows)),
		slog.String("total_debit", totalDebit.String()))
	return &domain.TrialBalance{
		AsOfDate:    asOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

func (s *reportingService) GetAgingReport(ctx context.Context, asOf time.Time, bucketFilter []string) (*domain.AgingReport, error) {
	items, err := s.openItems.ListOpenItems(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load open items for aging",
			slog.Time("as_of", asOf))
		return nil, err
	}

	buckets := make(map[string]domain.AgingBucket, len(domain.AgingBucketKeys))
	for _, key := range domain.AgingBucketKeys {
		buckets[key] = domain.AgingBucket{Amount: decimal.Zero}
	}

	totalOutstanding := decimal.Zero
	count := 0
	for _, item := range items {
		outstanding := item.TotalAmount.Sub(item.PaidAmount)
		if !outstanding.IsPositive() {
			continue
		}
		daysOverdue := int(asOf.Sub(item.DueDate).Hours() / 24)
		key := domain.ClassifyOverdue(daysOverdue)

		bucket := buckets[key]
		bucket.Amount = bucket.Amount.Add(outstanding)
		bucket.Count++
		buckets[key] = bucket

		totalOutstanding = totalOutstanding.Add(outstanding)
		count++
	}

	if len(bucketFilter) > 0 {
		filtered := make(map[string]domain.AgingBucket, len(bucketFilter))
		for _, key := range bucketFilter {
			if bucket, ok := buckets[key]; ok {
				filtered[key] = bucket
			}
		}
		buckets = filtered
	}

	s.LogDebug(ctx, "Aging report computed",
		slog.Int("open_items", count),
		slog.String("total_outstanding", totalOutstanding.String()))
	return &domain.AgingReport{
		AsOfDate:         asOf,
		Buckets:          buckets,
		TotalOutstanding: totalOutstanding,
		Count:            count,
	}, nil
}
