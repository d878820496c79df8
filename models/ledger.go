package models

import "time"

// LedgerEntry is the audit record written alongside every balance-affecting
// operation. Amount is the signed coin delta from the account's point of view.
type LedgerEntry struct {
	ID              int64           `db:"id"`
	AccountID       int64           `db:"account_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          int64           `db:"amount"`
	Metadata        map[string]any  `db:"metadata"`
	CreatedAt       time.Time       `db:"created_at"`
}
