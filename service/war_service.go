package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"vaultrush/events"
	"vaultrush/models"
)

const (
	warContenders = 10
	warPoolRate   = 0.10
	warLossRate   = 0.10
)

// WeekNumber returns the war week a time falls in, counted from January 1st
// of its year.
func WeekNumber(t time.Time) int {
	dayOfYear := t.YearDay()
	week := int(math.Ceil(float64(dayOfYear) / 7))
	if week < 1 {
		week = 1
	}
	return week
}

type warService struct {
	uowFactory UnitOfWorkFactory
}

// NewWarService creates a new vault war service
func NewWarService(uowFactory UnitOfWorkFactory) WarService {
	return &warService{uowFactory: uowFactory}
}

// StartWar snapshots the strongest war-enabled alliances into this week's
// entries. Rerunning within the same week is a no-op per alliance.
func (s *warService) StartWar(ctx context.Context) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	contenders, err := uow.AllianceRepository().TopByPower(ctx, warContenders, true)
	if err != nil {
		return 0, err
	}

	week := WeekNumber(time.Now())
	for _, alliance := range contenders {
		if err := uow.WarRepository().CreateEntry(ctx, week, alliance.GuildID, alliance.VaultPower); err != nil {
			return 0, fmt.Errorf("failed to enter alliance %d: %w", alliance.GuildID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"week":       week,
		"contenders": len(contenders),
	}).Info("Vault war started")
	return len(contenders), nil
}

// FinalizeWar settles a week: the top half of entries by snapshot power win
// an even share of a pool worth 10% of all snapshot power, the bottom half
// pay 10% of their own snapshot power out of their pooled vault coins. The
// top contributor of the champion alliance is awarded a Legendary artifact.
func (s *warService) FinalizeWar(ctx context.Context, weekNumber int) (*models.WarResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.WarRepository().GetActiveByWeek(ctx, weekNumber)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no active war entries for week %d", weekNumber)
	}

	var totalPower int64
	for _, e := range entries {
		totalPower += e.VaultPower
	}
	numWinners := (len(entries) + 1) / 2
	pool := int64(math.Floor(float64(totalPower) * warPoolRate))
	perWinner := pool / int64(numWinners)

	result := &models.WarResult{
		WeekNumber:     weekNumber,
		CoinsPerWinner: perWinner,
	}
	var winnerGuilds []int64

	for i, entry := range entries {
		rank := i + 1
		if i < numWinners {
			claimed, err := uow.WarRepository().CompleteEntry(ctx, entry.ID, rank, perWinner, 0)
			if err != nil {
				return nil, err
			}
			if !claimed {
				return nil, fmt.Errorf("war entry %d already settled", entry.ID)
			}
			if err := uow.AllianceRepository().AddCoins(ctx, entry.GuildID, perWinner); err != nil {
				return nil, fmt.Errorf("failed to pay alliance %d: %w", entry.GuildID, err)
			}
			entry.Rank = &rank
			entry.CoinsWon = perWinner
			entry.Status = models.WarStatusCompleted
			result.Winners = append(result.Winners, entry)
			winnerGuilds = append(winnerGuilds, entry.GuildID)
		} else {
			loss := int64(math.Floor(float64(entry.VaultPower) * warLossRate))
			claimed, err := uow.WarRepository().CompleteEntry(ctx, entry.ID, rank, 0, loss)
			if err != nil {
				return nil, err
			}
			if !claimed {
				return nil, fmt.Errorf("war entry %d already settled", entry.ID)
			}
			if err := uow.AllianceRepository().DeductCoinsFloor(ctx, entry.GuildID, loss); err != nil {
				return nil, fmt.Errorf("failed to dock alliance %d: %w", entry.GuildID, err)
			}
			entry.Rank = &rank
			entry.CoinsLost = loss
			entry.Status = models.WarStatusCompleted
			result.Losers = append(result.Losers, entry)
		}
	}

	if err := s.awardChampion(ctx, uow, entries[0].GuildID); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.WarFinalizedEvent{
		WeekNumber:     weekNumber,
		WinnerGuilds:   winnerGuilds,
		CoinsPerWinner: perWinner,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"week":    weekNumber,
		"winners": len(result.Winners),
		"pool":    pool,
	}).Info("Vault war finalized")
	return result, nil
}

// awardChampion mints the war artifact for the champion alliance's top
// contributor.
func (s *warService) awardChampion(ctx context.Context, uow UnitOfWork, guildID int64) error {
	top, err := uow.AllianceRepository().TopContributors(ctx, guildID, 1)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}

	artifact, err := uow.ArtifactRepository().Create(ctx, &models.Artifact{
		OwnerID:      top[0].AccountID,
		Name:         "Golden Reactor",
		Rarity:       models.RarityLegendary,
		BonusKind:    models.BonusKindCoinRate,
		BonusValue:   1.0,
		AcquiredFrom: "vault_war",
	})
	if err != nil {
		return fmt.Errorf("failed to mint war artifact: %w", err)
	}

	uow.EventBus().Publish(events.ArtifactDroppedEvent{
		OwnerID:    artifact.OwnerID,
		ArtifactID: artifact.ID,
		Name:       artifact.Name,
		Rarity:     artifact.Rarity,
		Source:     artifact.AcquiredFrom,
	})
	return nil
}

func (s *warService) Rankings(ctx context.Context, weekNumber int) ([]*models.WarEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.WarRepository().GetByWeek(ctx, weekNumber)
}
