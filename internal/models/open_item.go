package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenItem represents an outstanding receivable or payable document whose
// remaining balance feeds the aging report.
type OpenItem struct {
	ItemID      string          `db:"item_id"`
	DueDate     time.Time       `db:"due_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
}
