package service

import (
	"context"
	"fmt"
	"math/rand"

	"vaultrush/models"
)

type artifactTemplate struct {
	name        string
	rarity      models.Rarity
	bonusKind   models.BonusKind
	bonusValue  float64
	description string
}

var artifactTemplates = []artifactTemplate{
	{"Golden Gear", models.RarityCommon, models.BonusKindCoinRate, 0.05, "+5% coin generation"},
	{"Silver Cog", models.RarityCommon, models.BonusKindSpeed, 0.03, "+3% vault speed"},
	{"Lucky Coin", models.RarityCommon, models.BonusKindLuck, 0.02, "+2% luck bonus"},
	{"Ruby Engine", models.RarityRare, models.BonusKindCoinRate, 0.15, "+15% coin generation"},
	{"Sapphire Wheel", models.RarityRare, models.BonusKindSpeed, 0.10, "+10% vault speed"},
	{"Diamond Vault Core", models.RarityEpic, models.BonusKindCoinRate, 0.30, "+30% coin generation"},
	{"Platinum Accelerator", models.RarityEpic, models.BonusKindSpeed, 0.25, "+25% vault speed"},
	{"Mythical Vault Crown", models.RarityLegendary, models.BonusKindCoinRate, 0.50, "+50% coin generation"},
	{"Eternal Fortune Charm", models.RarityLegendary, models.BonusKindLuck, 0.40, "+40% luck bonus"},
}

// rollRarity draws a rarity tier: 50% Common, 30% Rare, 15% Epic,
// 5% Legendary.
func rollRarity(rng *rand.Rand) models.Rarity {
	roll := rng.Float64()
	switch {
	case roll < 0.50:
		return models.RarityCommon
	case roll < 0.80:
		return models.RarityRare
	case roll < 0.95:
		return models.RarityEpic
	}
	return models.RarityLegendary
}

// rollArtifactTemplate draws an unsaved artifact for the owner from the
// template table.
func rollArtifactTemplate(ownerID int64, source string, rng *rand.Rand) *models.Artifact {
	rarity := rollRarity(rng)

	var candidates []artifactTemplate
	for _, t := range artifactTemplates {
		if t.rarity == rarity {
			candidates = append(candidates, t)
		}
	}
	t := candidates[rng.Intn(len(candidates))]

	return &models.Artifact{
		OwnerID:      ownerID,
		Name:         t.name,
		Rarity:       t.rarity,
		BonusKind:    t.bonusKind,
		BonusValue:   t.bonusValue,
		Description:  t.description,
		AcquiredFrom: source,
	}
}

type artifactService struct {
	uowFactory UnitOfWorkFactory
}

// NewArtifactService creates a new artifact service
func NewArtifactService(uowFactory UnitOfWorkFactory) ArtifactService {
	return &artifactService{uowFactory: uowFactory}
}

// ListArtifacts returns an account's collection, rarest first
func (s *artifactService) ListArtifacts(ctx context.Context, discordID int64) ([]*models.Artifact, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	artifacts, err := uow.ArtifactRepository().GetByOwner(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artifacts: %w", err)
	}

	return artifacts, nil
}
