package repository

import (
	"context"
	"fmt"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `
	discord_id, username, coins, vault_tokens, vault_level, vault_speed_level,
	coins_per_hour, last_collection, last_activity, total_earned, total_spent,
	created_at, updated_at`

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.DiscordID,
		&a.Username,
		&a.Coins,
		&a.VaultTokens,
		&a.VaultLevel,
		&a.VaultSpeedLevel,
		&a.CoinsPerHour,
		&a.LastCollection,
		&a.LastActivity,
		&a.TotalEarned,
		&a.TotalSpent,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByDiscordID retrieves an account by its Discord ID
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE discord_id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by discord ID %d: %w", discordID, err)
	}

	return account, nil
}

// Create creates a new account with the starting balance and base rate
func (r *AccountRepository) Create(ctx context.Context, discordID int64, username string, startingCoins int64, baseRate float64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (discord_id, username, coins, coins_per_hour)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, username, startingCoins, baseRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create account with discord ID %d: %w", discordID, err)
	}

	return account, nil
}

// UpdateUsername keeps the cached username current
func (r *AccountRepository) UpdateUsername(ctx context.Context, discordID int64, username string) error {
	query := `UPDATE accounts SET username = $1, updated_at = NOW() WHERE discord_id = $2`

	_, err := r.q.Exec(ctx, query, username, discordID)
	if err != nil {
		return fmt.Errorf("failed to update username for account %d: %w", discordID, err)
	}
	return nil
}

// CreditCoins adds earned coins and advances the total_earned counter
func (r *AccountRepository) CreditCoins(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET coins = coins + $1, total_earned = total_earned + $1, last_activity = NOW(), updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to credit coins for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// DebitCoins removes spent coins and advances the total_spent counter,
// failing if the account cannot cover the amount
func (r *AccountRepository) DebitCoins(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET coins = coins - $1, total_spent = total_spent + $1, last_activity = NOW(), updated_at = NOW()
		WHERE discord_id = $2 AND coins >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to debit coins for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return r.insufficientCoinsErr(ctx, discordID, amount)
	}

	return nil
}

// AddCoins adds coins without touching the earn counter. Used for
// transfers, refunds and escrow returns.
func (r *AccountRepository) AddCoins(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET coins = coins + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to add coins for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// DeductCoins removes coins without touching the spend counter, failing if
// insufficient. Used for transfers and escrow.
func (r *AccountRepository) DeductCoins(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET coins = coins - $1, updated_at = NOW()
		WHERE discord_id = $2 AND coins >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to deduct coins for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return r.insufficientCoinsErr(ctx, discordID, amount)
	}

	return nil
}

func (r *AccountRepository) insufficientCoinsErr(ctx context.Context, discordID int64, amount int64) error {
	account, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}
	return fmt.Errorf("insufficient coins: have %d, need %d", account.Coins, amount)
}

// AddTokens adds vault tokens to an account
func (r *AccountRepository) AddTokens(ctx context.Context, discordID int64, tokens int) error {
	if tokens <= 0 {
		return fmt.Errorf("tokens must be positive")
	}

	query := `
		UPDATE accounts
		SET vault_tokens = vault_tokens + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, tokens, discordID)
	if err != nil {
		return fmt.Errorf("failed to add tokens for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// DeductTokens removes vault tokens atomically, failing if insufficient
func (r *AccountRepository) DeductTokens(ctx context.Context, discordID int64, tokens int) error {
	if tokens <= 0 {
		return fmt.Errorf("tokens must be positive")
	}

	query := `
		UPDATE accounts
		SET vault_tokens = vault_tokens - $1, updated_at = NOW()
		WHERE discord_id = $2 AND vault_tokens >= $1
	`

	result, err := r.q.Exec(ctx, query, tokens, discordID)
	if err != nil {
		return fmt.Errorf("failed to deduct tokens for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		account, err := r.GetByDiscordID(ctx, discordID)
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if account == nil {
			return fmt.Errorf("account with discord ID %d not found", discordID)
		}
		return fmt.Errorf("insufficient tokens: have %d, need %d", account.VaultTokens, tokens)
	}

	return nil
}

// UpdateCollection advances the collection cursor after a successful collect
func (r *AccountRepository) UpdateCollection(ctx context.Context, discordID int64) error {
	query := `
		UPDATE accounts
		SET last_collection = NOW(), last_activity = NOW(), updated_at = NOW()
		WHERE discord_id = $1
	`

	result, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return fmt.Errorf("failed to update collection for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// TouchActivity marks the account active now, extending the accrual window
func (r *AccountRepository) TouchActivity(ctx context.Context, discordID int64) error {
	query := `UPDATE accounts SET last_activity = NOW(), updated_at = NOW() WHERE discord_id = $1`

	_, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return fmt.Errorf("failed to touch activity for account %d: %w", discordID, err)
	}
	return nil
}

// IncreaseVaultLevel bumps the vault level and hourly rate together
func (r *AccountRepository) IncreaseVaultLevel(ctx context.Context, discordID int64, rateBoost float64) error {
	query := `
		UPDATE accounts
		SET vault_level = vault_level + 1, coins_per_hour = coins_per_hour + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, rateBoost, discordID)
	if err != nil {
		return fmt.Errorf("failed to increase vault level for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// IncreaseSpeedLevel bumps the collection speed level
func (r *AccountRepository) IncreaseSpeedLevel(ctx context.Context, discordID int64) error {
	query := `
		UPDATE accounts
		SET vault_speed_level = vault_speed_level + 1, updated_at = NOW()
		WHERE discord_id = $1
	`

	result, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return fmt.Errorf("failed to increase speed level for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// TopByCoins returns the richest accounts for the leaderboard
func (r *AccountRepository) TopByCoins(ctx context.Context, limit int) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY coins DESC LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Totals aggregates the coin supply for economy stats
func (r *AccountRepository) Totals(ctx context.Context) (accountCount int64, totalCoins int64, totalTokens int64, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(coins), 0), COALESCE(SUM(vault_tokens), 0)
		FROM accounts
	`

	if err = r.q.QueryRow(ctx, query).Scan(&accountCount, &totalCoins, &totalTokens); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to aggregate account totals: %w", err)
	}

	return accountCount, totalCoins, totalTokens, nil
}
