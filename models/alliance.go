package models

import "time"

// Alliance is a per-guild pooled account: contributed coins, a power score
// used in war rankings, and an upgradeable vault level.
type Alliance struct {
	GuildID            int64     `db:"guild_id"`
	GuildName          string    `db:"guild_name"`
	VaultCoins         int64     `db:"vault_coins"`
	VaultPower         int64     `db:"vault_power"`
	VaultLevel         int       `db:"vault_level"`
	TotalContributions int64     `db:"total_contributions"`
	WarEnabled         bool      `db:"war_enabled"`
	LastActivity       time.Time `db:"last_activity"`
	CreatedAt          time.Time `db:"created_at"`
}

// AllianceContribution is one member contribution, logged for the
// top-contributor ranking used by war settlement.
type AllianceContribution struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	AccountID int64     `db:"account_id"`
	Amount    int64     `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}

// AllianceInfo is the alliance summary with its top contributors
type AllianceInfo struct {
	Alliance        *Alliance
	TopContributors []*Contributor
}

// Contributor pairs an account with its summed contributions
type Contributor struct {
	AccountID int64
	Username  string
	Total     int64
}

// AllianceUpgradeResult represents the outcome of an alliance vault upgrade
type AllianceUpgradeResult struct {
	Cost     int64
	NewLevel int
}
