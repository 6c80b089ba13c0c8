package services_test

import (
	"context"
	"testing"

	"github.com/finbooks/gl_service/internal/apperrors"
	"github.com/finbooks/gl_service/internal/core/domain"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
	"github.com/finbooks/gl_service/internal/core/services"
	"github.com/finbooks/gl_service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:   "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		Category:      "current_assets",
		NormalBalance: domain.DebitNormal,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1000", account.AccountCode)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal(domain.DebitNormal, account.NormalBalance)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:   "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		Category:      "current_assets",
		NormalBalance: domain.DebitNormal,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountCode:     "1010",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		Category:        "current_assets",
		ParentAccountID: &parentID,
		NormalBalance:   domain.DebitNormal,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrParentNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInactive() {
	ctx := context.Background()
	parent := domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1000",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      false,
	}
	req := dto.CreateAccountRequest{
		AccountCode:     "1010",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		Category:        "current_assets",
		ParentAccountID: &parent.AccountID,
		NormalBalance:   domain.DebitNormal,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrParentInactive)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	newName := "Cash and Equivalents"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, existing.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ChangesType() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1900",
		Name:          "Deposits",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	newType := domain.Expense
	req := dto.UpdateAccountRequest{AccountType: &newType}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountType == domain.Expense && a.NormalBalance == domain.DebitNormal
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, existing.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, updated.AccountType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParent() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1000",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	req := dto.UpdateAccountRequest{ParentAccountID: &existing.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSelfParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CyclicParent() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := domain.Account{
		AccountID:     accountID,
		AccountCode:   "1000",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	// child points back at the account being updated
	child := domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     "1010",
		AccountType:     domain.Asset,
		ParentAccountID: accountID,
		NormalBalance:   domain.DebitNormal,
		IsActive:        true,
	}
	req := dto.UpdateAccountRequest{ParentAccountID: &child.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, child.AccountID).Return(&child, nil)

	_, err := suite.service.UpdateAccount(ctx, accountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCyclicParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1000",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("CountActiveChildren", ctx, existing.AccountID).Return(0, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, existing.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, existing.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_HasActiveChildren() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   "1000",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("CountActiveChildren", ctx, existing.AccountID).Return(2, nil).Once()

	err := suite.service.DeactivateAccount(ctx, existing.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrHasActiveChildren)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetHierarchy_BuildsTree() {
	ctx := context.Background()
	root := domain.Account{AccountID: "a-root", AccountCode: "1000", NormalBalance: domain.DebitNormal, IsActive: true}
	child := domain.Account{AccountID: "a-child", AccountCode: "1100", ParentAccountID: "a-root", NormalBalance: domain.DebitNormal, IsActive: true}
	grandchild := domain.Account{AccountID: "a-grand", AccountCode: "1110", ParentAccountID: "a-child", NormalBalance: domain.DebitNormal, IsActive: true}
	other := domain.Account{AccountID: "a-other", AccountCode: "2000", NormalBalance: domain.CreditNormal, IsActive: true}

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return([]domain.Account{root, child, grandchild, other}, nil).Once()

	nodes, err := suite.service.GetHierarchy(ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(nodes, 2)
	suite.Equal("1000", nodes[0].AccountCode)
	suite.Equal("2000", nodes[1].AccountCode)
	suite.Require().Len(nodes[0].Children, 1)
	suite.Equal("1100", nodes[0].Children[0].AccountCode)
	suite.Require().Len(nodes[0].Children[0].Children, 1)
	suite.Equal("1110", nodes[0].Children[0].Children[0].AccountCode)
}

func (suite *AccountServiceTestSuite) TestGetHierarchy_RootNotFound() {
	ctx := context.Background()
	rootID := uuid.NewString()

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.GetHierarchy(ctx, &rootID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestValidateStructure_ReportsProblems() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "a1", AccountCode: "1000", NormalBalance: domain.DebitNormal, IsActive: true},
		{AccountID: "a2", AccountCode: "1000", NormalBalance: domain.DebitNormal, IsActive: true},
		{AccountID: "a3", AccountCode: "3000", ParentAccountID: "missing", NormalBalance: domain.CreditNormal, IsActive: false},
	}

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return(accounts, nil).Once()

	report, err := suite.service.ValidateStructure(ctx)

	suite.Require().NoError(err)
	suite.False(report.Valid)
	suite.Equal([]string{"1000"}, report.DuplicateCodes)
	suite.Equal([]string{"a3"}, report.OrphanedAccounts)
	suite.Equal(3, report.TotalCount)
	suite.Equal(2, report.ActiveCount)
}

func (suite *AccountServiceTestSuite) TestValidateStructure_CleanChart() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "a1", AccountCode: "1000", NormalBalance: domain.DebitNormal, IsActive: true},
		{AccountID: "a2", AccountCode: "2000", ParentAccountID: "a1", NormalBalance: domain.CreditNormal, IsActive: true},
	}

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return(accounts, nil).Once()

	report, err := suite.service.ValidateStructure(ctx)

	suite.Require().NoError(err)
	suite.True(report.Valid)
	suite.Empty(report.DuplicateCodes)
	suite.Empty(report.OrphanedAccounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
