package services

import (
	"context"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/finbooks/gl_service/internal/dto"
)

// AccountSvcFacade defines the chart-of-accounts registry operations.
type AccountSvcFacade interface {
	// CreateAccount registers a new account. Fails with apperrors.ErrDuplicate
	// when the code is taken and ErrParentNotFound when the parent is unknown.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// UpdateAccount applies the supplied fields only. A parent change is
	// re-validated for existence and acyclicity.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account. Fails with
	// ErrHasActiveChildren while active children point at it.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// GetHierarchy builds the parent/child tree rooted at rootID, or all root
	// accounts when rootID is nil.
	GetHierarchy(ctx context.Context, rootID *string) ([]*domain.AccountNode, error)

	// ValidateStructure runs the chart-of-accounts integrity sweep.
	ValidateStructure(ctx context.Context) (*domain.StructureReport, error)
}
