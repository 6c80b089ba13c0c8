package repositories

import (
	"context"
	"time"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ListAccountsFilter narrows a chart-of-accounts listing. Nil fields are not applied.
type ListAccountsFilter struct {
	AccountType *domain.AccountType
	Active      *bool
	Limit       int
	Offset      int
}

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its caller-assigned code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by account code.
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]domain.Account, error)

	// ListAllAccounts retrieves every account including inactive ones, ordered by
	// account code. Used by hierarchy and structure-validation sweeps.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)

	// CountActiveChildren returns how many active accounts have the given parent.
	CountActiveChildren(ctx context.Context, accountID string) (int, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive (soft delete).
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside journal transactions.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks the rows within a
	// transaction, so a concurrent deactivation cannot slip between validation
	// and commit of an entry that references them.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
