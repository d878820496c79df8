package repository

import (
	"context"
	"fmt"
	"time"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

// LedgerRepository implements the LedgerRepository interface
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record appends one audit entry for a balance mutation
func (r *LedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (account_id, transaction_type, amount, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.AccountID, entry.TransactionType, entry.Amount, entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry for account %d: %w", entry.AccountID, err)
	}

	return nil
}

// GetByAccount returns an account's recent entries, newest first
func (r *LedgerRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, metadata, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		err := rows.Scan(&e.ID, &e.AccountID, &e.TransactionType, &e.Amount, &e.Metadata, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// LastByType returns the most recent entry of one type for an account, used
// by the daily reward cooldown
func (r *LedgerRepository) LastByType(ctx context.Context, accountID int64, txType models.TransactionType) (*models.LedgerEntry, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, metadata, created_at
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_type = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var e models.LedgerEntry
	err := r.q.QueryRow(ctx, query, accountID, txType).
		Scan(&e.ID, &e.AccountID, &e.TransactionType, &e.Amount, &e.Metadata, &e.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last %s entry for account %d: %w", txType, accountID, err)
	}

	return &e, nil
}

// CountByTypeSince counts entries of one type after a cutoff, used by the
// daily reward streak
func (r *LedgerRepository) CountByTypeSince(ctx context.Context, accountID int64, txType models.TransactionType, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_type = $2 AND created_at >= $3
	`

	var count int
	if err := r.q.QueryRow(ctx, query, accountID, txType, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s entries for account %d: %w", txType, accountID, err)
	}
	return count, nil
}
