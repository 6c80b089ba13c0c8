package dto

import (
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceParams defines query parameters for a balance lookup.
type AccountBalanceParams struct {
	AsOfDate *time.Time `form:"asOfDate" time_format:"2006-01-02"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AsOfDate    *time.Time      `json:"asOfDate,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalanceParams defines query parameters for a trial balance.
type TrialBalanceParams struct {
	AsOfDate time.Time `form:"asOfDate" time_format:"2006-01-02" binding:"required"`
}

// TrialBalanceResponse defines the data returned for a trial balance report.
type TrialBalanceResponse struct {
	AsOfDate    time.Time                `json:"asOfDate"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// AgingReportParams defines query parameters for an aging report.
// Buckets optionally restricts the report to a subset of bucket keys.
type AgingReportParams struct {
	AsOfDate time.Time `form:"asOfDate" time_format:"2006-01-02" binding:"required"`
	Buckets  []string  `form:"bucket" binding:"omitempty,dive,oneof=current 1_30 31_60 61_90 over_90"`
}

// AgingReportResponse defines the data returned for an aging report.
type AgingReportResponse struct {
	AsOfDate         time.Time                     `json:"asOfDate"`
	Buckets          map[string]domain.AgingBucket `json:"buckets"`
	TotalOutstanding decimal.Decimal               `json:"totalOutstanding"`
	Count            int                           `json:"count"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:   b.AccountID,
		AccountCode: b.AccountCode,
		AsOfDate:    b.AsOfDate,
		Debit:       b.Debit,
		Credit:      b.Credit,
		Net:         b.Net,
	}
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	return TrialBalanceResponse{
		AsOfDate:    tb.AsOfDate,
		Rows:        tb.Rows,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
	}
}

// ToAgingReportResponse converts a domain.AgingReport to its DTO.
func ToAgingReportResponse(r *domain.AgingReport) AgingReportResponse {
	return AgingReportResponse{
		AsOfDate:         r.AsOfDate,
		Buckets:          r.Buckets,
		TotalOutstanding: r.TotalOutstanding,
		Count:            r.Count,
	}
}
