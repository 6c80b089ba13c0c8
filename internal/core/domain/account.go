package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates whether an account's natural positive balance is a
// debit or a credit. It determines the sign of net balances in reporting.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account represents one entry in the chart of accounts.
// ParentAccountID is an empty string for root accounts; the parent graph is a
// tree, enforced at write time by the account service.
type Account struct {
	AccountID       string        `json:"accountID"`   // Primary key (UUID)
	AccountCode     string        `json:"accountCode"` // Caller-assigned, unique forever (soft-deleted accounts keep theirs)
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	Category        string        `json:"category"` // Free-form grouping, e.g. "Current Assets"
	ParentAccountID string        `json:"parentAccountID"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	IsActive        bool          `json:"isActive"` // Soft delete flag; never hard-deleted
	IsSystem        bool          `json:"isSystem"`
	AuditFields
}

// AccountNode is an account with its resolved children, used by the hierarchy view.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children,omitempty"`
}

// StructureReport is the result of the chart-of-accounts integrity sweep.
// Duplicate codes and orphaned parents should never occur in normal operation;
// the sweep exists to detect storage-layer corruption.
type StructureReport struct {
	Valid            bool     `json:"valid"`
	DuplicateCodes   []string `json:"duplicateCodes"`
	OrphanedAccounts []string `json:"orphanedAccounts"` // account IDs whose parent resolves to nothing
	TotalCount       int      `json:"totalCount"`
	ActiveCount      int      `json:"activeCount"`
}
