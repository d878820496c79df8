package service

import (
	"context"
	"fmt"

	"vaultrush/models"
)

type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new economy stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{uowFactory: uowFactory}
}

func (s *statsService) EconomyStats(ctx context.Context) (*models.EconomyStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	accounts, totalCoins, totalTokens, err := uow.AccountRepository().Totals(ctx)
	if err != nil {
		return nil, err
	}
	tokenPrice, err := uow.MarketOrderRepository().ReferencePrice(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := uow.StockRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	auctions, err := uow.AuctionRepository().GetActive(ctx)
	if err != nil {
		return nil, err
	}
	activeEvents, err := uow.EventRepository().GetActive(ctx)
	if err != nil {
		return nil, err
	}

	return &models.EconomyStats{
		Accounts:       accounts,
		TotalCoins:     totalCoins,
		TotalTokens:    totalTokens,
		TokenPrice:     tokenPrice,
		ListedStocks:   len(stocks),
		ActiveAuctions: len(auctions),
		ActiveEvents:   len(activeEvents),
	}, nil
}
