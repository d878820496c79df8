package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"vaultrush/models"
)

const (
	loanMinDuration = time.Hour
	loanMaxDuration = 30 * 24 * time.Hour
	loanMaxInterest = 1.0
)

type loanService struct {
	uowFactory UnitOfWorkFactory
}

// NewLoanService creates a new peer-to-peer loan service
func NewLoanService(uowFactory UnitOfWorkFactory) LoanService {
	return &loanService{uowFactory: uowFactory}
}

// CreateLoan funds the borrower immediately. The lender's claim is the
// principal plus simple interest, floored.
func (s *loanService) CreateLoan(ctx context.Context, lenderID, borrowerID, principal int64, interestRate float64, duration time.Duration) (*models.Loan, error) {
	if lenderID == borrowerID {
		return nil, fmt.Errorf("you cannot lend to yourself")
	}
	if principal <= 0 {
		return nil, fmt.Errorf("principal must be positive")
	}
	if interestRate < 0 || interestRate > loanMaxInterest {
		return nil, fmt.Errorf("interest rate must be between 0 and %.0f%%", loanMaxInterest*100)
	}
	if duration < loanMinDuration || duration > loanMaxDuration {
		return nil, fmt.Errorf("loan duration must be between %s and %s", loanMinDuration, loanMaxDuration)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	lender, err := uow.AccountRepository().GetByDiscordID(ctx, lenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lender: %w", err)
	}
	if lender == nil {
		return nil, fmt.Errorf("account not found")
	}
	borrower, err := uow.AccountRepository().GetByDiscordID(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get borrower: %w", err)
	}
	if borrower == nil {
		return nil, fmt.Errorf("borrower not found")
	}
	if !lender.CanAfford(principal) {
		return nil, fmt.Errorf("insufficient coins to lend %d", principal)
	}

	totalOwed := int64(math.Floor(float64(principal) * (1 + interestRate)))

	if err := uow.AccountRepository().DeductCoins(ctx, lenderID, principal); err != nil {
		return nil, fmt.Errorf("failed to fund loan: %w", err)
	}
	if err := uow.AccountRepository().AddCoins(ctx, borrowerID, principal); err != nil {
		return nil, fmt.Errorf("failed to deliver principal: %w", err)
	}

	loan, err := uow.LoanRepository().Create(ctx, lenderID, borrowerID, principal, interestRate, totalOwed, time.Now().Add(duration))
	if err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	lenderEntry := &models.LedgerEntry{
		AccountID:       lenderID,
		TransactionType: models.TransactionTypeLoanFunded,
		Amount:          -principal,
		Metadata:        map[string]any{"loan_id": loan.ID, "borrower": borrowerID},
	}
	if err := RecordLedgerEntry(ctx, uow, lenderEntry, lender.Coins-principal); err != nil {
		return nil, err
	}
	borrowerEntry := &models.LedgerEntry{
		AccountID:       borrowerID,
		TransactionType: models.TransactionTypeLoanReceived,
		Amount:          principal,
		Metadata:        map[string]any{"loan_id": loan.ID, "lender": lenderID},
	}
	if err := RecordLedgerEntry(ctx, uow, borrowerEntry, borrower.Coins+principal); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return loan, nil
}

// Repay pays down an active loan. Overpayment is clamped to what is owed,
// and full repayment completes the loan.
func (s *loanService) Repay(ctx context.Context, borrowerID, loanID, amount int64) (*models.RepayResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	loan, err := uow.LoanRepository().GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || loan.BorrowerID != borrowerID {
		return nil, fmt.Errorf("loan not found")
	}
	if loan.Status != models.LoanStatusActive {
		return nil, fmt.Errorf("loan is %s", loan.Status)
	}

	if remaining := loan.Remaining(); amount > remaining {
		amount = remaining
	}

	borrower, err := uow.AccountRepository().GetByDiscordID(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if borrower == nil {
		return nil, fmt.Errorf("account not found")
	}
	if !borrower.CanAfford(amount) {
		return nil, fmt.Errorf("insufficient coins to pay %d", amount)
	}

	if err := uow.AccountRepository().DeductCoins(ctx, borrowerID, amount); err != nil {
		return nil, fmt.Errorf("failed to collect payment: %w", err)
	}
	if err := uow.AccountRepository().AddCoins(ctx, loan.LenderID, amount); err != nil {
		return nil, fmt.Errorf("failed to pay lender: %w", err)
	}
	if err := uow.LoanRepository().AddPayment(ctx, loanID, amount); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	status := models.LoanStatusActive
	if loan.AmountPaid+amount >= loan.TotalOwed {
		status = models.LoanStatusCompleted
		if err := uow.LoanRepository().SetStatus(ctx, loanID, status); err != nil {
			return nil, fmt.Errorf("failed to complete loan: %w", err)
		}
	}

	entry := &models.LedgerEntry{
		AccountID:       borrowerID,
		TransactionType: models.TransactionTypeLoanPayment,
		Amount:          -amount,
		Metadata:        map[string]any{"loan_id": loanID},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, borrower.Coins-amount); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.RepayResult{
		Paid:      amount,
		Remaining: loan.TotalOwed - loan.AmountPaid - amount,
		Status:    status,
	}, nil
}

// Cancel unwinds an untouched loan: the borrower returns the principal and
// the lender forgives the interest. Once any payment has landed the loan
// must run its course.
func (s *loanService) Cancel(ctx context.Context, lenderID, loanID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	loan, err := uow.LoanRepository().GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan == nil || loan.LenderID != lenderID {
		return fmt.Errorf("loan not found")
	}
	if loan.Status != models.LoanStatusActive {
		return fmt.Errorf("loan is %s", loan.Status)
	}
	if loan.AmountPaid > 0 {
		return fmt.Errorf("loan has payments and can no longer be cancelled")
	}

	borrower, err := uow.AccountRepository().GetByDiscordID(ctx, loan.BorrowerID)
	if err != nil {
		return fmt.Errorf("failed to get borrower: %w", err)
	}
	if borrower == nil || !borrower.CanAfford(loan.Principal) {
		return fmt.Errorf("borrower cannot return the principal")
	}

	if err := uow.AccountRepository().DeductCoins(ctx, loan.BorrowerID, loan.Principal); err != nil {
		return fmt.Errorf("failed to recover principal: %w", err)
	}
	if err := uow.AccountRepository().AddCoins(ctx, lenderID, loan.Principal); err != nil {
		return fmt.Errorf("failed to return principal: %w", err)
	}
	if err := uow.LoanRepository().SetStatus(ctx, loanID, models.LoanStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel loan: %w", err)
	}

	entry := &models.LedgerEntry{
		AccountID:       loan.BorrowerID,
		TransactionType: models.TransactionTypeLoanCancelled,
		Amount:          -loan.Principal,
		Metadata:        map[string]any{"loan_id": loanID},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, borrower.Coins-loan.Principal); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *loanService) LoansFor(ctx context.Context, discordID int64) ([]*models.Loan, []*models.Loan, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	borrowed, err := uow.LoanRepository().GetByBorrower(ctx, discordID)
	if err != nil {
		return nil, nil, err
	}
	lent, err := uow.LoanRepository().GetByLender(ctx, discordID)
	if err != nil {
		return nil, nil, err
	}
	return borrowed, lent, nil
}

// CollectOverdue force-repays overdue loans with whatever the borrower can
// afford. Each loan settles in its own transaction.
func (s *loanService) CollectOverdue(ctx context.Context) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	overdue, err := uow.LoanRepository().GetOverdueActive(ctx)
	uow.Rollback()
	if err != nil {
		return 0, err
	}

	collected := 0
	for _, loan := range overdue {
		if err := s.collectLoan(ctx, loan.ID); err != nil {
			logrus.WithError(err).WithField("loan_id", loan.ID).Error("Overdue collection failed")
			continue
		}
		collected++
	}
	return collected, nil
}

func (s *loanService) collectLoan(ctx context.Context, loanID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Re-read inside the transaction: a payment may have landed since the scan.
	loan, err := uow.LoanRepository().GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan == nil || loan.Status != models.LoanStatusActive {
		return nil
	}

	borrower, err := uow.AccountRepository().GetByDiscordID(ctx, loan.BorrowerID)
	if err != nil {
		return err
	}
	if borrower == nil {
		return nil
	}

	amount := loan.Remaining()
	if borrower.Coins < amount {
		amount = borrower.Coins
	}
	if amount <= 0 {
		return nil
	}

	if err := uow.AccountRepository().DeductCoins(ctx, loan.BorrowerID, amount); err != nil {
		return fmt.Errorf("failed to collect from borrower: %w", err)
	}
	if err := uow.AccountRepository().AddCoins(ctx, loan.LenderID, amount); err != nil {
		return fmt.Errorf("failed to pay lender: %w", err)
	}
	if err := uow.LoanRepository().AddPayment(ctx, loan.ID, amount); err != nil {
		return fmt.Errorf("failed to record collection: %w", err)
	}
	if loan.AmountPaid+amount >= loan.TotalOwed {
		if err := uow.LoanRepository().SetStatus(ctx, loan.ID, models.LoanStatusCompleted); err != nil {
			return fmt.Errorf("failed to complete loan: %w", err)
		}
	}

	entry := &models.LedgerEntry{
		AccountID:       loan.BorrowerID,
		TransactionType: models.TransactionTypeLoanCollected,
		Amount:          -amount,
		Metadata:        map[string]any{"loan_id": loan.ID},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, borrower.Coins-amount); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
