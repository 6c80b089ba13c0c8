package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountActivity sums posted debits and credits for a single account,
// bounded by entry date when asOf is non-nil.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.debit_amount), 0) AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
			AND e.status = 'POSTED'
	`
	args := []any{accountID}
	if asOf != nil {
		query += " AND e.entry_date <= $2"
		args = append(args, *asOf)
	}

	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying account activity for %s: %w", accountID, err)
	}
	return debit, credit, nil
}

// GetTrialBalanceData retrieves per-account posted totals as of a specific date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.account_code,
			a.name AS account_name,
			SUM(l.debit_amount) AS total_debit,
			SUM(l.credit_amount) AS total_credit
		FROM journal_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date <= $1
			AND e.status = 'POSTED'
		GROUP BY a.account_id, a.account_code, a.name
		HAVING SUM(l.debit_amount) <> 0 OR SUM(l.credit_amount) <> 0
		ORDER BY a.account_code
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TrialBalanceRow{}, nil
	}
	return result, nil
}
