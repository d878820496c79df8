package models

import "time"

// LoanStatus is the loan state machine. Transitions are monotone:
// active -> completed or active -> cancelled, never back.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusCancelled LoanStatus = "cancelled"
)

// Valid reports whether the status is a known loan state
func (s LoanStatus) Valid() bool {
	return s == LoanStatusActive || s == LoanStatusCompleted || s == LoanStatusCancelled
}

// Loan is a peer-to-peer interest-bearing transfer, funded at creation.
type Loan struct {
	ID           int64      `db:"id"`
	LenderID     int64      `db:"lender_id"`
	BorrowerID   int64      `db:"borrower_id"`
	Principal    int64      `db:"principal"`
	InterestRate float64    `db:"interest_rate"`
	TotalOwed    int64      `db:"total_owed"`
	AmountPaid   int64      `db:"amount_paid"`
	Status       LoanStatus `db:"status"`
	DueDate      time.Time  `db:"due_date"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Remaining returns the outstanding amount still owed
func (l *Loan) Remaining() int64 {
	return l.TotalOwed - l.AmountPaid
}

// IsOverdue reports whether an active loan is past its due date
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == LoanStatusActive && now.After(l.DueDate)
}

// RepayResult represents the outcome of a loan payment
type RepayResult struct {
	Paid      int64
	Remaining int64
	Status    LoanStatus
}
