package service

import (
	"context"
	"fmt"
	"math"

	"vaultrush/models"
)

const (
	allianceUpgradeBase  = 10000
	allianceUpgradePower = 1000
	allianceTopN         = 5
)

// allianceUpgradeCost returns the price of moving off the given level.
func allianceUpgradeCost(currentLevel int) int64 {
	return int64(math.Floor(allianceUpgradeBase * math.Pow(1.5, float64(currentLevel-1))))
}

type allianceService struct {
	uowFactory UnitOfWorkFactory
}

// NewAllianceService creates a new alliance service
func NewAllianceService(uowFactory UnitOfWorkFactory) AllianceService {
	return &allianceService{uowFactory: uowFactory}
}

// Contribute moves a member's coins into the guild's pooled vault. Power
// grows one for one with contributed coins.
func (s *allianceService) Contribute(ctx context.Context, guildID int64, guildName string, discordID, amount int64) (*models.Alliance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("contribution must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found")
	}
	if !account.CanAfford(amount) {
		return nil, fmt.Errorf("insufficient coins to contribute %d", amount)
	}

	alliance, err := uow.AllianceRepository().GetOrCreate(ctx, guildID, guildName)
	if err != nil {
		return nil, fmt.Errorf("failed to get alliance: %w", err)
	}

	if err := uow.AccountRepository().DebitCoins(ctx, discordID, amount); err != nil {
		return nil, fmt.Errorf("failed to collect contribution: %w", err)
	}
	if err := uow.AllianceRepository().AddContribution(ctx, guildID, amount); err != nil {
		return nil, fmt.Errorf("failed to credit alliance: %w", err)
	}
	if err := uow.AllianceRepository().RecordContribution(ctx, guildID, discordID, amount); err != nil {
		return nil, fmt.Errorf("failed to log contribution: %w", err)
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeContribution,
		Amount:          -amount,
		Metadata:        map[string]any{"guild_id": guildID},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, account.Coins-amount); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	alliance.VaultCoins += amount
	alliance.VaultPower += amount
	alliance.TotalContributions += amount
	return alliance, nil
}

// UpgradeVault spends pooled coins on the next vault level, which adds a
// fixed block of war power.
func (s *allianceService) UpgradeVault(ctx context.Context, guildID int64) (*models.AllianceUpgradeResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	alliance, err := uow.AllianceRepository().GetByGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if alliance == nil {
		return nil, fmt.Errorf("this server has no alliance vault yet")
	}

	cost := allianceUpgradeCost(alliance.VaultLevel)
	if alliance.VaultCoins < cost {
		return nil, fmt.Errorf("the upgrade costs %d, the vault holds %d", cost, alliance.VaultCoins)
	}

	if err := uow.AllianceRepository().Upgrade(ctx, guildID, cost, allianceUpgradePower); err != nil {
		return nil, fmt.Errorf("failed to upgrade alliance vault: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.AllianceUpgradeResult{
		Cost:     cost,
		NewLevel: alliance.VaultLevel + 1,
	}, nil
}

func (s *allianceService) Info(ctx context.Context, guildID int64, guildName string) (*models.AllianceInfo, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	alliance, err := uow.AllianceRepository().GetOrCreate(ctx, guildID, guildName)
	if err != nil {
		return nil, err
	}
	top, err := uow.AllianceRepository().TopContributors(ctx, guildID, allianceTopN)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.AllianceInfo{Alliance: alliance, TopContributors: top}, nil
}

func (s *allianceService) Leaderboard(ctx context.Context, limit int) ([]*models.Alliance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.AllianceRepository().TopByPower(ctx, limit, false)
}

func (s *allianceService) SetWarEnabled(ctx context.Context, guildID int64, enabled bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	alliance, err := uow.AllianceRepository().GetByGuild(ctx, guildID)
	if err != nil {
		return err
	}
	if alliance == nil {
		return fmt.Errorf("this server has no alliance vault yet")
	}

	if err := uow.AllianceRepository().SetWarEnabled(ctx, guildID, enabled); err != nil {
		return err
	}
	return uow.Commit()
}
