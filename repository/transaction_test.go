package repository

import (
	"context"
	"errors"
	"testing"

	"vaultrush/models"
	"vaultrush/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_RollsBackAllWrites(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		accounts := newAccountRepositoryWithTx(tx)
		ledger := newLedgerRepositoryWithTx(tx)

		if _, err := accounts.Create(ctx, 501, "ghost", 1000, 100); err != nil {
			return err
		}
		entry := testutil.CreateTestLedgerEntry(501, models.TransactionTypeCollection, 250)
		if err := ledger.Record(ctx, entry); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	// Neither the account nor its ledger entry survived the rollback
	account, err := NewAccountRepository(testDB.DB).GetByDiscordID(ctx, 501)
	require.NoError(t, err)
	assert.Nil(t, account)

	entries, err := NewLedgerRepository(testDB.DB).GetByAccount(ctx, 501, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		accounts := newAccountRepositoryWithTx(tx)
		if _, err := accounts.Create(ctx, 502, "keeper", 1000, 100); err != nil {
			return err
		}
		return accounts.CreditCoins(ctx, 502, 500)
	})
	require.NoError(t, err)

	account, err := NewAccountRepository(testDB.DB).GetByDiscordID(ctx, 502)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(1500), account.Coins)
}
