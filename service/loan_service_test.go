package service

import (
	"context"
	"testing"
	"time"

	"vaultrush/models"
	"vaultrush/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLoanService_CreateLoan_RejectsBadInput(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewLoanService(mockFactory)

	_, err := service.CreateLoan(ctx, 111, 111, 1000, 0.1, 24*time.Hour)
	assert.Error(t, err)

	_, err = service.CreateLoan(ctx, 111, 222, 0, 0.1, 24*time.Hour)
	assert.Error(t, err)

	_, err = service.CreateLoan(ctx, 111, 222, 1000, 1.5, 24*time.Hour)
	assert.Error(t, err)

	_, err = service.CreateLoan(ctx, 111, 222, 1000, 0.1, 10*time.Minute)
	assert.Error(t, err)

	_, err = service.CreateLoan(ctx, 111, 222, 1000, 0.1, 60*24*time.Hour)
	assert.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestLoanService_CreateLoan_FundsBorrowerImmediately(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLoanRepo := new(MockLoanRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewLoanService(mockFactory)

	lender := testutil.CreateTestAccountWithCoins(111, "lender", 10000)
	borrower := testutil.CreateTestAccountWithCoins(222, "borrower", 500)

	created := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(111)).Return(lender, nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(222)).Return(borrower, nil)

	mockAccountRepo.On("DeductCoins", ctx, int64(111), int64(1000)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(222), int64(1000)).Return(nil)
	// floor(1000 * 1.25)
	mockLoanRepo.On("Create", ctx, int64(111), int64(222), int64(1000), 0.25, int64(1250), mock.Anything).Return(created, nil)

	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeLoanFunded && entry.AccountID == 111 && entry.Amount == -1000
	})).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeLoanReceived && entry.AccountID == 222 && entry.Amount == 1000
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	loan, err := service.CreateLoan(ctx, 111, 222, 1000, 0.25, 7*24*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, created, loan)
	mockAccountRepo.AssertExpectations(t)
	mockLoanRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestLoanService_Repay_OverpaymentClampedAndCompletes(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLoanRepo := new(MockLoanRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewLoanService(mockFactory)

	loan := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)
	loan.AmountPaid = 1000 // 250 left of the 1250 owed

	borrower := testutil.CreateTestAccountWithCoins(222, "borrower", 5000)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockLoanRepo.On("GetByID", ctx, int64(1)).Return(loan, nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(222)).Return(borrower, nil)

	// A 9999 payment is clamped to the 250 remaining
	mockAccountRepo.On("DeductCoins", ctx, int64(222), int64(250)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(111), int64(250)).Return(nil)
	mockLoanRepo.On("AddPayment", ctx, int64(1), int64(250)).Return(nil)
	mockLoanRepo.On("SetStatus", ctx, int64(1), models.LoanStatusCompleted).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeLoanPayment && entry.Amount == -250
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	result, err := service.Repay(ctx, 222, 1, 9999)

	assert.NoError(t, err)
	assert.Equal(t, int64(250), result.Paid)
	assert.Equal(t, int64(0), result.Remaining)
	assert.Equal(t, models.LoanStatusCompleted, result.Status)
	mockLoanRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestLoanService_Repay_WrongBorrower(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockLoanRepo := new(MockLoanRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, nil)

	service := NewLoanService(mockFactory)

	loan := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockLoanRepo.On("GetByID", ctx, int64(1)).Return(loan, nil)

	result, err := service.Repay(ctx, 999, 1, 100)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, result)
}

func TestLoanService_Cancel_ExactReversal(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLoanRepo := new(MockLoanRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewLoanService(mockFactory)

	loan := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)
	borrower := testutil.CreateTestAccountWithCoins(222, "borrower", 2000)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockLoanRepo.On("GetByID", ctx, int64(1)).Return(loan, nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(222)).Return(borrower, nil)

	// Only the principal moves back, the interest is forgiven
	mockAccountRepo.On("DeductCoins", ctx, int64(222), int64(1000)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(111), int64(1000)).Return(nil)
	mockLoanRepo.On("SetStatus", ctx, int64(1), models.LoanStatusCancelled).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeLoanCancelled && entry.Amount == -1000
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	err := service.Cancel(ctx, 111, 1)

	assert.NoError(t, err)
	mockAccountRepo.AssertExpectations(t)
	mockLoanRepo.AssertExpectations(t)
}

func TestLoanService_Cancel_BlockedOncePaymentsExist(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLoanRepo := new(MockLoanRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, nil)

	service := NewLoanService(mockFactory)

	loan := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)
	loan.AmountPaid = 100

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockLoanRepo.On("GetByID", ctx, int64(1)).Return(loan, nil)

	err := service.Cancel(ctx, 111, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no longer be cancelled")
	mockAccountRepo.AssertNotCalled(t, "DeductCoins")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestLoanService_CollectOverdue_TakesWhatBorrowerHas(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLoanRepo := new(MockLoanRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewLoanService(mockFactory)

	loan := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)
	loan.DueDate = time.Now().Add(-time.Hour)

	// The borrower holds less than the 1250 owed
	borrower := testutil.CreateTestAccountWithCoins(222, "borrower", 400)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockLoanRepo.On("GetOverdueActive", ctx).Return([]*models.Loan{loan}, nil)
	mockLoanRepo.On("GetByID", ctx, int64(1)).Return(loan, nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(222)).Return(borrower, nil)

	mockAccountRepo.On("DeductCoins", ctx, int64(222), int64(400)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(111), int64(400)).Return(nil)
	mockLoanRepo.On("AddPayment", ctx, int64(1), int64(400)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeLoanCollected && entry.Amount == -400
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	collected, err := service.CollectOverdue(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, collected)
	// A partial collection leaves the loan active
	mockLoanRepo.AssertNotCalled(t, "SetStatus")
	mockAccountRepo.AssertExpectations(t)
	mockLoanRepo.AssertExpectations(t)
}

func TestLoanService_CollectOverdue_SkipsCompletedOnReread(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLoanRepo := new(MockLoanRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, mockLoanRepo, nil, nil, nil, nil)

	service := NewLoanService(mockFactory)

	scanned := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)
	scanned.DueDate = time.Now().Add(-time.Hour)

	// A payment landed between the scan and the settlement transaction
	settled := testutil.CreateTestLoan(1, 111, 222, 1000, 0.25)
	settled.Status = models.LoanStatusCompleted

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockLoanRepo.On("GetOverdueActive", ctx).Return([]*models.Loan{scanned}, nil)
	mockLoanRepo.On("GetByID", ctx, int64(1)).Return(settled, nil)

	collected, err := service.CollectOverdue(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, collected)
	mockAccountRepo.AssertNotCalled(t, "DeductCoins")
	mockUoW.AssertNotCalled(t, "Commit")
}
