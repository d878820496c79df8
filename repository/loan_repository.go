package repository

import (
	"context"
	"fmt"
	"time"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `
	id, lender_id, borrower_id, principal, interest_rate, total_owed,
	amount_paid, status, due_date, created_at`

// LoanRepository implements the LoanRepository interface
type LoanRepository struct {
	q queryable
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *database.DB) *LoanRepository {
	return &LoanRepository{q: db.Pool}
}

func newLoanRepositoryWithTx(tx queryable) *LoanRepository {
	return &LoanRepository{q: tx}
}

func scanLoan(row pgx.Row) (*models.Loan, error) {
	var l models.Loan
	err := row.Scan(
		&l.ID, &l.LenderID, &l.BorrowerID, &l.Principal, &l.InterestRate,
		&l.TotalOwed, &l.AmountPaid, &l.Status, &l.DueDate, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new active loan
func (r *LoanRepository) Create(ctx context.Context, lenderID, borrowerID, principal int64, interestRate float64, totalOwed int64, dueDate time.Time) (*models.Loan, error) {
	query := `
		INSERT INTO loans (lender_id, borrower_id, principal, interest_rate, total_owed, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + loanColumns

	loan, err := scanLoan(r.q.QueryRow(ctx, query, lenderID, borrowerID, principal, interestRate, totalOwed, dueDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create loan from %d to %d: %w", lenderID, borrowerID, err)
	}

	return loan, nil
}

// GetByID retrieves a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan, err := scanLoan(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan %d: %w", id, err)
	}

	return loan, nil
}

// GetByBorrower returns a borrower's loans, active first
func (r *LoanRepository) GetByBorrower(ctx context.Context, borrowerID int64) ([]*models.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE borrower_id = $1
		ORDER BY status = 'active' DESC, created_at DESC
	`

	return r.queryLoans(ctx, query, borrowerID)
}

// GetByLender returns a lender's loans, active first
func (r *LoanRepository) GetByLender(ctx context.Context, lenderID int64) ([]*models.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE lender_id = $1
		ORDER BY status = 'active' DESC, created_at DESC
	`

	return r.queryLoans(ctx, query, lenderID)
}

// GetOverdueActive returns active loans past their due date
func (r *LoanRepository) GetOverdueActive(ctx context.Context) ([]*models.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status = 'active' AND due_date <= NOW()
		ORDER BY due_date ASC
	`

	return r.queryLoans(ctx, query)
}

func (r *LoanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]*models.Loan, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []*models.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}

	return loans, nil
}

// AddPayment advances a loan's paid counter, guarding against overpayment
func (r *LoanRepository) AddPayment(ctx context.Context, loanID, amount int64) error {
	query := `
		UPDATE loans
		SET amount_paid = amount_paid + $1
		WHERE id = $2 AND status = 'active' AND amount_paid + $1 <= total_owed
	`

	result, err := r.q.Exec(ctx, query, amount, loanID)
	if err != nil {
		return fmt.Errorf("failed to record payment on loan %d: %w", loanID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("loan %d cannot accept payment of %d", loanID, amount)
	}

	return nil
}

// SetStatus transitions an active loan to a terminal state
func (r *LoanRepository) SetStatus(ctx context.Context, loanID int64, status models.LoanStatus) error {
	query := `UPDATE loans SET status = $1 WHERE id = $2 AND status = 'active'`

	result, err := r.q.Exec(ctx, query, status, loanID)
	if err != nil {
		return fmt.Errorf("failed to set loan %d status: %w", loanID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("loan %d is not active", loanID)
	}

	return nil
}
