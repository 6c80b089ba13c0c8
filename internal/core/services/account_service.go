package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finbooks/gl_service/internal/apperrors"
	"github.com/finbooks/gl_service/internal/core/domain"
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
	"github.com/finbooks/gl_service/internal/dto"
	"github.com/google/uuid"
)

var (
	// ErrParentNotFound is returned when a referenced parent account does not exist.
	ErrParentNotFound = fmt.Errorf("parent account not found: %w", apperrors.ErrValidation)
	// ErrParentInactive is returned when a referenced parent account is deactivated.
	ErrParentInactive = fmt.Errorf("parent account is inactive: %w", apperrors.ErrValidation)
	// ErrCyclicParent is returned when a parent change would create a cycle.
	ErrCyclicParent = fmt.Errorf("parent change would create a cycle: %w", apperrors.ErrValidation)
	// ErrSelfParent is returned when an account references itself as parent.
	ErrSelfParent = fmt.Errorf("account cannot be its own parent: %w", apperrors.ErrValidation)
	// ErrHasActiveChildren is returned when deactivating an account with active children.
	ErrHasActiveChildren = fmt.Errorf("account has active child accounts: %w", apperrors.ErrConflict)
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if err := s.validateParent(ctx, parentID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     req.AccountCode,
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		Category:        req.Category,
		ParentAccountID: parentID,
		NormalBalance:   domain.NormalBalance(req.NormalBalance),
		IsActive:        true,
		IsSystem:        req.IsSystem,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Account code already in use",
				slog.String("account_code", req.AccountCode))
			return nil, fmt.Errorf("account code %s already exists: %w", req.AccountCode, err)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs",
			slog.Int("count", len(accountIDs)))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.ListAccountsFilter{
		AccountType: params.AccountType,
		Active:      params.Active,
		Limit:       params.Limit,
		Offset:      params.Offset,
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", filter.Limit),
			slog.Int("offset", filter.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.Category != nil {
		account.Category = *req.Category
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentAccountID != nil {
		newParent := *req.ParentAccountID
		if newParent != account.ParentAccountID {
			if newParent != "" {
				if err := s.validateParentChange(ctx, accountID, newParent); err != nil {
					return nil, err
				}
			}
			account.ParentAccountID = newParent
			updated = true
		}
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	activeChildren, err := s.accountRepo.CountActiveChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count child accounts",
			slog.String("account_id", accountID))
		return err
	}
	if activeChildren > 0 {
		s.LogDebug(ctx, "Deactivation blocked by active children",
			slog.String("account_id", accountID),
			slog.Int("active_children", activeChildren))
		return fmt.Errorf("account %s has %d active child accounts: %w", accountID, activeChildren, ErrHasActiveChildren)
	}

	now := time.Now()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID))
	return nil
}

func (s *accountService) GetHierarchy(ctx context.Context, rootID *string) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for hierarchy")
		return nil, err
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{Account: accounts[i]}
	}
	for _, node := range nodes {
		if node.ParentAccountID == "" {
			continue
		}
		if parent, ok := nodes[node.ParentAccountID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	for _, node := range nodes {
		sortNodesByCode(node.Children)
	}

	if rootID != nil && *rootID != "" {
		root, ok := nodes[*rootID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		return []*domain.AccountNode{root}, nil
	}

	roots := make([]*domain.AccountNode, 0)
	for _, node := range nodes {
		// Accounts whose parent is missing are surfaced as roots rather
		// than silently dropped; validateStructure reports them.
		if node.ParentAccountID == "" || nodes[node.ParentAccountID] == nil {
			roots = append(roots, node)
		}
	}
	sortNodesByCode(roots)
	return roots, nil
}

func (s *accountService) ValidateStructure(ctx context.Context) (*domain.StructureReport, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for structure validation")
		return nil, err
	}

	byID := make(map[string]domain.Account, len(accounts))
	seenCodes := make(map[string]int, len(accounts))
	activeCount := 0
	for _, a := range accounts {
		byID[a.AccountID] = a
		seenCodes[a.AccountCode]++
		if a.IsActive {
			activeCount++
		}
	}

	report := domain.StructureReport{
		DuplicateCodes:   []string{},
		OrphanedAccounts: []string{},
		TotalCount:       len(accounts),
		ActiveCount:      activeCount,
	}
	for code, n := range seenCodes {
		if n > 1 {
			report.DuplicateCodes = append(report.DuplicateCodes, code)
		}
	}
	for _, a := range accounts {
		if a.ParentAccountID == "" {
			continue
		}
		if _, ok := byID[a.ParentAccountID]; !ok {
			report.OrphanedAccounts = append(report.OrphanedAccounts, a.AccountID)
		}
	}
	sort.Strings(report.DuplicateCodes)
	sort.Strings(report.OrphanedAccounts)
	report.Valid = len(report.DuplicateCodes) == 0 && len(report.OrphanedAccounts) == 0

	s.LogInfo(ctx, "Chart of accounts structure validated",
		slog.Bool("valid", report.Valid),
		slog.Int("total_accounts", report.TotalCount))
	return &report, nil
}

// validateParent checks that a parent account exists and is active.
func (s *accountService) validateParent(ctx context.Context, parentID string) error {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("parent account %s: %w", parentID, ErrParentNotFound)
		}
		s.LogError(ctx, err, "Failed to find parent account",
			slog.String("parent_id", parentID))
		return err
	}
	if !parent.IsActive {
		return fmt.Errorf("parent account %s: %w", parentID, ErrParentInactive)
	}
	return nil
}

// validateParentChange checks the new parent exists and that adopting it does
// not make the account an ancestor of itself.
func (s *accountService) validateParentChange(ctx context.Context, accountID, newParentID string) error {
	if newParentID == accountID {
		return ErrSelfParent
	}
	if err := s.validateParent(ctx, newParentID); err != nil {
		return err
	}

	// Walk up from the new parent; hitting the account being updated means
	// the change would close a cycle.
	currentID := newParentID
	for currentID != "" {
		current, err := s.accountRepo.FindAccountByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Broken ancestor chain, no cycle possible beyond here.
				return nil
			}
			return err
		}
		if current.ParentAccountID == accountID {
			return fmt.Errorf("account %s is an ancestor of %s: %w", accountID, newParentID, ErrCyclicParent)
		}
		currentID = current.ParentAccountID
	}
	return nil
}

func sortNodesByCode(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].AccountCode < nodes[j].AccountCode
	})
}
