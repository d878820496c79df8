package service

import (
	"context"
	"testing"

	"vaultrush/models"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_EconomyStats(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockAuctionRepo := new(MockAuctionRepository)
	mockOrderRepo := new(MockMarketOrderRepository)
	mockStockRepo := new(MockStockRepository)
	mockEventRepo := new(MockEventRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, mockAuctionRepo, mockOrderRepo, mockStockRepo, nil, nil, nil, mockEventRepo, nil)

	service := NewStatsService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("Totals", ctx).Return(int64(42), int64(1500000), int64(8000), nil)
	mockOrderRepo.On("ReferencePrice", ctx).Return(int64(95), nil)
	mockStockRepo.On("GetAll", ctx).Return([]*models.Stock{{ID: 1}, {ID: 2}}, nil)
	mockAuctionRepo.On("GetActive", ctx).Return([]*models.Auction{{ID: 1}}, nil)
	mockEventRepo.On("GetActive", ctx).Return([]*models.TimedEvent{}, nil)

	stats, err := service.EconomyStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.Accounts)
	assert.Equal(t, int64(1500000), stats.TotalCoins)
	assert.Equal(t, int64(8000), stats.TotalTokens)
	assert.Equal(t, int64(95), stats.TokenPrice)
	assert.Equal(t, 2, stats.ListedStocks)
	assert.Equal(t, 1, stats.ActiveAuctions)
	assert.Equal(t, 0, stats.ActiveEvents)
	// Stats are a read, no Commit() expected
	mockUoW.AssertNotCalled(t, "Commit")
}
