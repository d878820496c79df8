package service

import (
	"context"
	"fmt"

	"vaultrush/events"
	"vaultrush/models"
)

// RecordLedgerEntry records an audit ledger entry and emits the matching
// event. This is the single entry point for balance mutations in the system.
func RecordLedgerEntry(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry, newBalance int64) error {
	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	// Emitted only after the transaction commits
	uow.EventBus().Publish(events.LedgerRecordedEvent{
		AccountID:       entry.AccountID,
		TransactionType: entry.TransactionType,
		Amount:          entry.Amount,
		NewBalance:      newBalance,
	})

	return nil
}
