package repository

import (
	"context"
	"testing"
	"time"

	"vaultrush/models"
	"vaultrush/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_RecordAndQuery(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	_, err := accountRepo.Create(ctx, 111, "alice", 1000, 100)
	require.NoError(t, err)

	t.Run("record assigns id and timestamp", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry(111, models.TransactionTypeCollection, 250)
		err := repo.Record(ctx, entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("get by account is newest first", func(t *testing.T) {
		older := testutil.CreateTestLedgerEntry(111, models.TransactionTypeGameLoss, -100)
		require.NoError(t, repo.Record(ctx, older))
		newer := testutil.CreateTestLedgerEntry(111, models.TransactionTypeGameWin, 200)
		require.NoError(t, repo.Record(ctx, newer))

		entries, err := repo.GetByAccount(ctx, 111, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(entries), 3)
		assert.Equal(t, newer.ID, entries[0].ID)
	})

	t.Run("last by type", func(t *testing.T) {
		last, err := repo.LastByType(ctx, 111, models.TransactionTypeGameWin)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, int64(200), last.Amount)

		none, err := repo.LastByType(ctx, 111, models.TransactionTypeDailyReward)
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("count by type since cutoff", func(t *testing.T) {
		count, err := repo.CountByTypeSince(ctx, 111, models.TransactionTypeGameWin, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = repo.CountByTypeSince(ctx, 111, models.TransactionTypeGameWin, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
