package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side increases the account.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account represents a chart-of-accounts row.
// Note: ParentAccountID uses string for a nullable foreign key.
type Account struct {
	AccountID       string        `db:"account_id"`
	AccountCode     string        `db:"account_code"`
	Name            string        `db:"name"`
	AccountType     AccountType   `db:"account_type"`
	Category        string        `db:"category"`
	ParentAccountID string        `db:"parent_account_id"` // Nullable
	NormalBalance   NormalBalance `db:"normal_balance"`
	IsActive        bool          `db:"is_active"`
	IsSystem        bool          `db:"is_system"`
	AuditFields
}
