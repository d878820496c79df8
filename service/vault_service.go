package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"vaultrush/config"
	"vaultrush/events"
	"vaultrush/models"
)

// inactivityWindow caps accrual: income stops accumulating this long after
// the account's last activity.
const inactivityWindow = 6 * time.Hour

// upgradeCost returns the price of moving off the given level.
func upgradeCost(currentLevel int) int64 {
	return int64(math.Floor(1000 * math.Pow(1.5, float64(currentLevel-1))))
}

// rateUpgradeBoost is the flat coins/hour gained per rate upgrade.
const rateUpgradeBoost = 50.0

type vaultService struct {
	uowFactory UnitOfWorkFactory
	rng        *rand.Rand
}

// NewVaultService creates a new vault service
func NewVaultService(uowFactory UnitOfWorkFactory) VaultService {
	return &vaultService{
		uowFactory: uowFactory,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetOrCreateAccount retrieves an existing account or creates a new one with
// the configured starting balance and base hourly rate
func (s *vaultService) GetOrCreateAccount(ctx context.Context, discordID int64, username string) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account != nil {
		if account.Username != username {
			if err := uow.AccountRepository().UpdateUsername(ctx, discordID, username); err != nil {
				return nil, err
			}
			account.Username = username
			if err := uow.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
		}
		return account, nil
	}

	cfg := config.Get()
	account, err = uow.AccountRepository().Create(ctx, discordID, username, cfg.StartingBalance, cfg.BaseHourlyRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		DiscordID:      discordID,
		Username:       username,
		InitialBalance: cfg.StartingBalance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return account, nil
}

// pendingIncome computes accrued coins for an account. Elapsed time is
// capped at the inactivity window past the last activity, so an idle vault
// stops earning.
func pendingIncome(account *models.Account, coinRateBonus float64, now time.Time) int64 {
	accrualEnd := now
	if cutoff := account.LastActivity.Add(inactivityWindow); accrualEnd.After(cutoff) {
		accrualEnd = cutoff
	}
	if !accrualEnd.After(account.LastCollection) {
		return 0
	}

	hours := accrualEnd.Sub(account.LastCollection).Hours()
	speedBonus := float64(account.VaultSpeedLevel) * 0.1
	effectiveRate := account.CoinsPerHour * (1 + coinRateBonus) * (1 + speedBonus)

	return int64(math.Floor(hours * effectiveRate))
}

// PendingIncome returns what Collect would currently pay
func (s *vaultService) PendingIncome(ctx context.Context, discordID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, fmt.Errorf("account not found")
	}

	coinBonus, err := uow.ArtifactRepository().SumBonus(ctx, discordID, models.BonusKindCoinRate)
	if err != nil {
		return 0, err
	}

	return pendingIncome(account, coinBonus, time.Now()), nil
}

// Collect credits accrued income, applying any active golden-hour
// multiplier, and may drop an artifact
func (s *vaultService) Collect(ctx context.Context, discordID int64) (*models.CollectResult, error) {
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

	coinBonus, err := uow.ArtifactRepository().SumBonus(ctx, discordID, models.BonusKindCoinRate)
	if err != nil {
		return nil, err
	}

	base := pendingIncome(account, coinBonus, time.Now())

	multiplier := 1.0
	active, err := uow.EventRepository().GetActive(ctx)
	if err != nil {
		return nil, err
	}
	stormRunning := false
	for _, ev := range active {
		switch ev.EventType {
		case models.EventGoldenHour:
			multiplier *= ev.Multiplier
		case models.EventArtifactStorm:
			stormRunning = true
		}
	}

	collected := int64(math.Floor(float64(base) * multiplier))

	if collected > 0 {
		if err := uow.AccountRepository().CreditCoins(ctx, discordID, collected); err != nil {
			return nil, fmt.Errorf("failed to credit collection: %w", err)
		}
	}
	if err := uow.AccountRepository().UpdateCollection(ctx, discordID); err != nil {
		return nil, err
	}

	result := &models.CollectResult{
		Collected:  collected,
		Multiplier: multiplier,
		NewBalance: account.Coins + collected,
	}

	// Collection may drop an artifact. Luck bonuses and an active storm
	// raise the base 10% chance.
	if collected > 0 {
		dropChance := 0.10
		if stormRunning {
			dropChance = 0.30
		}
		luck, err := uow.ArtifactRepository().SumBonus(ctx, discordID, models.BonusKindLuck)
		if err != nil {
			return nil, err
		}
		dropChance += luck

		if s.rng.Float64() < dropChance {
			artifact := rollArtifactTemplate(discordID, "event_drop", s.rng)
			artifact, err = uow.ArtifactRepository().Create(ctx, artifact)
			if err != nil {
				return nil, err
			}
			result.DroppedArtifact = artifact

			uow.EventBus().Publish(events.ArtifactDroppedEvent{
				OwnerID:    discordID,
				ArtifactID: artifact.ID,
				Name:       artifact.Name,
				Rarity:     artifact.Rarity,
				Source:     artifact.AcquiredFrom,
			})
		}
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeCollection,
		Amount:          collected,
		Metadata: map[string]any{
			"multiplier": multiplier,
		},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, result.NewBalance); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// Upgrade buys the next level on the rate or speed track
func (s *vaultService) Upgrade(ctx context.Context, discordID int64, kind models.UpgradeKind) (*models.UpgradeResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown upgrade kind %q", kind)
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

	currentLevel := account.VaultLevel
	if kind == models.UpgradeKindSpeed {
		currentLevel = account.VaultSpeedLevel
	}
	cost := upgradeCost(currentLevel)

	if !account.CanAfford(cost) {
		return nil, fmt.Errorf("upgrade costs %d coins, you have %d", cost, account.Coins)
	}

	if err := uow.AccountRepository().DebitCoins(ctx, discordID, cost); err != nil {
		return nil, fmt.Errorf("failed to pay for upgrade: %w", err)
	}

	if kind == models.UpgradeKindRate {
		err = uow.AccountRepository().IncreaseVaultLevel(ctx, discordID, rateUpgradeBoost)
	} else {
		err = uow.AccountRepository().IncreaseSpeedLevel(ctx, discordID)
	}
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeUpgrade,
		Amount:          -cost,
		Metadata: map[string]any{
			"kind":      string(kind),
			"new_level": currentLevel + 1,
		},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, account.Coins-cost); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.UpgradeResult{
		Kind:       kind,
		Cost:       cost,
		NewLevel:   currentLevel + 1,
		NewBalance: account.Coins - cost,
	}, nil
}

// VaultInfo returns the read-only vault summary
func (s *vaultService) VaultInfo(ctx context.Context, discordID int64) (*models.VaultInfo, error) {
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

	coinBonus, err := uow.ArtifactRepository().SumBonus(ctx, discordID, models.BonusKindCoinRate)
	if err != nil {
		return nil, err
	}

	return &models.VaultInfo{
		Coins:         account.Coins,
		Tokens:        account.VaultTokens,
		PendingCoins:  pendingIncome(account, coinBonus, time.Now()),
		VaultLevel:    account.VaultLevel,
		SpeedLevel:    account.VaultSpeedLevel,
		CoinsPerHour:  account.CoinsPerHour,
		NextRateCost:  upgradeCost(account.VaultLevel),
		NextSpeedCost: upgradeCost(account.VaultSpeedLevel),
	}, nil
}

// Leaderboard returns the richest accounts
func (s *vaultService) Leaderboard(ctx context.Context, limit int) ([]*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.AccountRepository().TopByCoins(ctx, limit)
}
