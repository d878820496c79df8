package repository

import (
	"context"
	"fmt"

	"vaultrush/database"
	"vaultrush/models"
)

// WarRepository implements the WarRepository interface
type WarRepository struct {
	q queryable
}

// NewWarRepository creates a new war repository
func NewWarRepository(db *database.DB) *WarRepository {
	return &WarRepository{q: db.Pool}
}

func newWarRepositoryWithTx(tx queryable) *WarRepository {
	return &WarRepository{q: tx}
}

// CreateEntry snapshots an alliance into a war week. Re-running the start
// job for the same week is a no-op per guild.
func (r *WarRepository) CreateEntry(ctx context.Context, weekNumber int, guildID, vaultPower int64) error {
	query := `
		INSERT INTO vault_wars (week_number, guild_id, vault_power)
		VALUES ($1, $2, $3)
		ON CONFLICT (week_number, guild_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, weekNumber, guildID, vaultPower); err != nil {
		return fmt.Errorf("failed to create war entry for guild %d week %d: %w", guildID, weekNumber, err)
	}
	return nil
}

// GetActiveByWeek returns a week's unsettled entries, strongest first
func (r *WarRepository) GetActiveByWeek(ctx context.Context, weekNumber int) ([]*models.WarEntry, error) {
	query := `
		SELECT id, week_number, guild_id, vault_power, rank, coins_won, coins_lost, status, created_at
		FROM vault_wars
		WHERE week_number = $1 AND status = 'active'
		ORDER BY vault_power DESC, guild_id ASC
	`

	return r.queryEntries(ctx, query, weekNumber)
}

// GetByWeek returns all of a week's entries joined with guild names,
// strongest first
func (r *WarRepository) GetByWeek(ctx context.Context, weekNumber int) ([]*models.WarEntry, error) {
	query := `
		SELECT w.id, w.week_number, w.guild_id, w.vault_power, w.rank, w.coins_won,
		       w.coins_lost, w.status, w.created_at, a.guild_name
		FROM vault_wars w
		JOIN alliances a ON a.guild_id = w.guild_id
		WHERE w.week_number = $1
		ORDER BY w.vault_power DESC, w.guild_id ASC
	`

	rows, err := r.q.Query(ctx, query, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query war entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WarEntry
	for rows.Next() {
		var e models.WarEntry
		err := rows.Scan(
			&e.ID, &e.WeekNumber, &e.GuildID, &e.VaultPower, &e.Rank,
			&e.CoinsWon, &e.CoinsLost, &e.Status, &e.CreatedAt, &e.GuildName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan war entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate war entries: %w", err)
	}

	return entries, nil
}

func (r *WarRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.WarEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query war entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WarEntry
	for rows.Next() {
		var e models.WarEntry
		err := rows.Scan(
			&e.ID, &e.WeekNumber, &e.GuildID, &e.VaultPower, &e.Rank,
			&e.CoinsWon, &e.CoinsLost, &e.Status, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan war entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate war entries: %w", err)
	}

	return entries, nil
}

// CompleteEntry settles one entry with its final rank and outcome. Returns
// false without error if another settlement got there first.
func (r *WarRepository) CompleteEntry(ctx context.Context, entryID int64, rank int, coinsWon, coinsLost int64) (bool, error) {
	query := `
		UPDATE vault_wars
		SET rank = $1, coins_won = $2, coins_lost = $3, status = 'completed'
		WHERE id = $4 AND status = 'active'
	`

	result, err := r.q.Exec(ctx, query, rank, coinsWon, coinsLost, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to complete war entry %d: %w", entryID, err)
	}

	return result.RowsAffected() > 0, nil
}
