package models

import (
	"errors"
	"time"
)

// Account represents a player's vault: currency balances, upgrade levels and
// the timestamps the accrual engine works from.
type Account struct {
	DiscordID       int64     `db:"discord_id"`
	Username        string    `db:"username"`
	Coins           int64     `db:"coins"`
	VaultTokens     int64     `db:"vault_tokens"`
	VaultLevel      int       `db:"vault_level"`
	VaultSpeedLevel int       `db:"vault_speed_level"`
	CoinsPerHour    float64   `db:"coins_per_hour"`
	LastCollection  time.Time `db:"last_collection"`
	LastActivity    time.Time `db:"last_activity"`
	TotalEarned     int64     `db:"total_earned"`
	TotalSpent      int64     `db:"total_spent"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CanAfford checks if the account has sufficient coins for an amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Coins >= amount
}

// HasTokens checks if the account holds at least the given number of vault tokens
func (a *Account) HasTokens(amount int64) bool {
	return a.VaultTokens >= amount
}

// ValidateStake checks a wager stake against the configured minimum and the balance
func (a *Account) ValidateStake(stake, minimum int64) error {
	if stake < minimum {
		return errors.New("stake is below the minimum")
	}
	if !a.CanAfford(stake) {
		return errors.New("insufficient coins")
	}
	return nil
}

// UpgradeKind selects which vault upgrade track to advance.
type UpgradeKind string

const (
	UpgradeKindRate  UpgradeKind = "rate"
	UpgradeKindSpeed UpgradeKind = "speed"
)

// Valid reports whether the upgrade kind is one of the known tracks
func (k UpgradeKind) Valid() bool {
	return k == UpgradeKindRate || k == UpgradeKindSpeed
}

// CollectResult represents the outcome of a vault collection (returned to the user)
type CollectResult struct {
	Collected       int64
	Multiplier      float64
	NewBalance      int64
	DroppedArtifact *Artifact
}

// UpgradeResult represents the outcome of a vault upgrade
type UpgradeResult struct {
	Kind       UpgradeKind
	Cost       int64
	NewLevel   int
	NewBalance int64
}

// VaultInfo is the read-only vault summary shown to the owner
type VaultInfo struct {
	Coins         int64
	Tokens        int64
	PendingCoins  int64
	VaultLevel    int
	SpeedLevel    int
	CoinsPerHour  float64
	NextRateCost  int64
	NextSpeedCost int64
}
