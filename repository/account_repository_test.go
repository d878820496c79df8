package repository

import (
	"context"
	"testing"

	"vaultrush/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no account found", func(t *testing.T) {
		account, err := repo.GetByDiscordID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("create and read back", func(t *testing.T) {
		created, err := repo.Create(ctx, 111, "alice", 1000, 100)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, int64(1000), created.Coins)
		assert.Equal(t, 1, created.VaultLevel)
		assert.Equal(t, float64(100), created.CoinsPerHour)

		account, err := repo.GetByDiscordID(ctx, 111)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, int64(1000), account.Coins)
	})

	t.Run("rename", func(t *testing.T) {
		err := repo.UpdateUsername(ctx, 111, "alicia")
		require.NoError(t, err)

		account, err := repo.GetByDiscordID(ctx, 111)
		require.NoError(t, err)
		assert.Equal(t, "alicia", account.Username)
	})
}

func TestAccountRepository_CoinMutations(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 222, "bob", 1000, 100)
	require.NoError(t, err)

	t.Run("credit tracks total earned", func(t *testing.T) {
		err := repo.CreditCoins(ctx, 222, 500)
		require.NoError(t, err)

		account, err := repo.GetByDiscordID(ctx, 222)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), account.Coins)
		assert.Equal(t, int64(500), account.TotalEarned)
	})

	t.Run("debit tracks total spent", func(t *testing.T) {
		err := repo.DebitCoins(ctx, 222, 300)
		require.NoError(t, err)

		account, err := repo.GetByDiscordID(ctx, 222)
		require.NoError(t, err)
		assert.Equal(t, int64(1200), account.Coins)
		assert.Equal(t, int64(300), account.TotalSpent)
	})

	t.Run("deduct refuses to overdraw", func(t *testing.T) {
		err := repo.DeductCoins(ctx, 222, 50000)
		assert.Error(t, err)

		account, getErr := repo.GetByDiscordID(ctx, 222)
		require.NoError(t, getErr)
		assert.Equal(t, int64(1200), account.Coins)
	})

	t.Run("token balance cannot go negative", func(t *testing.T) {
		err := repo.AddTokens(ctx, 222, 5)
		require.NoError(t, err)

		err = repo.DeductTokens(ctx, 222, 10)
		assert.Error(t, err)

		account, getErr := repo.GetByDiscordID(ctx, 222)
		require.NoError(t, getErr)
		assert.Equal(t, int64(5), account.VaultTokens)
	})
}

func TestAccountRepository_Totals(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 301, "one", 1000, 100)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 302, "two", 2500, 100)
	require.NoError(t, err)
	require.NoError(t, repo.AddTokens(ctx, 301, 7))

	accounts, coins, tokens, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), accounts)
	assert.Equal(t, int64(3500), coins)
	assert.Equal(t, int64(7), tokens)
}
