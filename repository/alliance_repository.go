package repository

import (
	"context"
	"fmt"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

const allianceColumns = `
	guild_id, guild_name, vault_coins, vault_power, vault_level,
	total_contributions, war_enabled, last_activity, created_at`

// AllianceRepository implements the AllianceRepository interface
type AllianceRepository struct {
	q queryable
}

// NewAllianceRepository creates a new alliance repository
func NewAllianceRepository(db *database.DB) *AllianceRepository {
	return &AllianceRepository{q: db.Pool}
}

func newAllianceRepositoryWithTx(tx queryable) *AllianceRepository {
	return &AllianceRepository{q: tx}
}

func scanAlliance(row pgx.Row) (*models.Alliance, error) {
	var a models.Alliance
	err := row.Scan(
		&a.GuildID, &a.GuildName, &a.VaultCoins, &a.VaultPower, &a.VaultLevel,
		&a.TotalContributions, &a.WarEnabled, &a.LastActivity, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetOrCreate fetches the guild's alliance, creating it on first touch
func (r *AllianceRepository) GetOrCreate(ctx context.Context, guildID int64, guildName string) (*models.Alliance, error) {
	query := `
		INSERT INTO alliances (guild_id, guild_name)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET guild_name = EXCLUDED.guild_name
		RETURNING ` + allianceColumns

	alliance, err := scanAlliance(r.q.QueryRow(ctx, query, guildID, guildName))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create alliance for guild %d: %w", guildID, err)
	}

	return alliance, nil
}

// GetByGuild retrieves an alliance without creating it
func (r *AllianceRepository) GetByGuild(ctx context.Context, guildID int64) (*models.Alliance, error) {
	query := `SELECT ` + allianceColumns + ` FROM alliances WHERE guild_id = $1`

	alliance, err := scanAlliance(r.q.QueryRow(ctx, query, guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alliance for guild %d: %w", guildID, err)
	}

	return alliance, nil
}

// AddContribution moves a member contribution into the pooled vault:
// coins and power both rise by the amount
func (r *AllianceRepository) AddContribution(ctx context.Context, guildID, amount int64) error {
	query := `
		UPDATE alliances
		SET vault_coins = vault_coins + $1,
		    vault_power = vault_power + $1,
		    total_contributions = total_contributions + $1,
		    last_activity = NOW()
		WHERE guild_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, guildID)
	if err != nil {
		return fmt.Errorf("failed to add contribution to guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alliance for guild %d not found", guildID)
	}

	return nil
}

// RecordContribution logs who contributed what
func (r *AllianceRepository) RecordContribution(ctx context.Context, guildID, accountID, amount int64) error {
	query := `
		INSERT INTO alliance_contributions (guild_id, account_id, amount)
		VALUES ($1, $2, $3)
	`

	if _, err := r.q.Exec(ctx, query, guildID, accountID, amount); err != nil {
		return fmt.Errorf("failed to record contribution for guild %d: %w", guildID, err)
	}
	return nil
}

// AddCoins credits war winnings into the pooled vault
func (r *AllianceRepository) AddCoins(ctx context.Context, guildID, amount int64) error {
	query := `
		UPDATE alliances
		SET vault_coins = vault_coins + $1, last_activity = NOW()
		WHERE guild_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, guildID)
	if err != nil {
		return fmt.Errorf("failed to add coins to guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alliance for guild %d not found", guildID)
	}

	return nil
}

// DeductCoinsFloor removes war-loss coins from the pooled vault, never
// dropping below zero
func (r *AllianceRepository) DeductCoinsFloor(ctx context.Context, guildID, amount int64) error {
	query := `
		UPDATE alliances
		SET vault_coins = GREATEST(vault_coins - $1, 0)
		WHERE guild_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, guildID)
	if err != nil {
		return fmt.Errorf("failed to deduct coins from guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alliance for guild %d not found", guildID)
	}

	return nil
}

// Upgrade raises the vault level and power, spending pooled coins. Fails if
// the vault cannot cover the cost.
func (r *AllianceRepository) Upgrade(ctx context.Context, guildID, cost, powerGain int64) error {
	query := `
		UPDATE alliances
		SET vault_coins = vault_coins - $1,
		    vault_level = vault_level + 1,
		    vault_power = vault_power + $2,
		    last_activity = NOW()
		WHERE guild_id = $3 AND vault_coins >= $1
	`

	result, err := r.q.Exec(ctx, query, cost, powerGain, guildID)
	if err != nil {
		return fmt.Errorf("failed to upgrade alliance for guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alliance for guild %d cannot afford upgrade of %d", guildID, cost)
	}

	return nil
}

// SetWarEnabled toggles weekly war participation
func (r *AllianceRepository) SetWarEnabled(ctx context.Context, guildID int64, enabled bool) error {
	query := `UPDATE alliances SET war_enabled = $1 WHERE guild_id = $2`

	result, err := r.q.Exec(ctx, query, enabled, guildID)
	if err != nil {
		return fmt.Errorf("failed to set war participation for guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alliance for guild %d not found", guildID)
	}

	return nil
}

// TopByPower returns the strongest war-enabled alliances
func (r *AllianceRepository) TopByPower(ctx context.Context, limit int, warEnabledOnly bool) ([]*models.Alliance, error) {
	query := `SELECT ` + allianceColumns + ` FROM alliances`
	if warEnabledOnly {
		query += ` WHERE war_enabled`
	}
	query += ` ORDER BY vault_power DESC LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alliances: %w", err)
	}
	defer rows.Close()

	var alliances []*models.Alliance
	for rows.Next() {
		alliance, err := scanAlliance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alliance: %w", err)
		}
		alliances = append(alliances, alliance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alliances: %w", err)
	}

	return alliances, nil
}

// TopContributors ranks a guild's members by summed contributions
func (r *AllianceRepository) TopContributors(ctx context.Context, guildID int64, limit int) ([]*models.Contributor, error) {
	query := `
		SELECT c.account_id, a.username, SUM(c.amount) AS total
		FROM alliance_contributions c
		JOIN accounts a ON a.discord_id = c.account_id
		WHERE c.guild_id = $1
		GROUP BY c.account_id, a.username
		ORDER BY total DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributors for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var contributors []*models.Contributor
	for rows.Next() {
		var c models.Contributor
		if err := rows.Scan(&c.AccountID, &c.Username, &c.Total); err != nil {
			return nil, fmt.Errorf("failed to scan contributor: %w", err)
		}
		contributors = append(contributors, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributors: %w", err)
	}

	return contributors, nil
}
