package pgsql

import (
	"context"
	"fmt"

	"github.com/finbooks/gl_service/internal/core/domain"
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	"github.com/finbooks/gl_service/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// openItemRepository reads the open_items table maintained by the
// receivables/payables services.
type openItemRepository struct {
	BaseRepository
}

// newOpenItemRepository creates a new open item repository
func newOpenItemRepository(db *pgxpool.Pool) portsrepo.OpenItemSource {
	return &openItemRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.OpenItemSource = (*openItemRepository)(nil)

// ListOpenItems returns items whose total exceeds the amount paid so far.
func (r *openItemRepository) ListOpenItems(ctx context.Context) ([]domain.OpenItem, error) {
	query := `
		SELECT item_id, due_date, total_amount, paid_amount
		FROM open_items
		WHERE total_amount > paid_amount
		ORDER BY due_date;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open items: %w", err)
	}
	defer rows.Close()

	items := []domain.OpenItem{}
	for rows.Next() {
		var m models.OpenItem
		if err := rows.Scan(&m.ItemID, &m.DueDate, &m.TotalAmount, &m.PaidAmount); err != nil {
			return nil, fmt.Errorf("failed to scan open item row: %w", err)
		}
		items = append(items, domain.OpenItem{
			ItemID:      m.ItemID,
			DueDate:     m.DueDate,
			TotalAmount: m.TotalAmount,
			PaidAmount:  m.PaidAmount,
		})
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating open item rows: %w", rows.Err())
	}

	return items, nil
}
