package service

import (
	"context"
	"testing"
	"time"

	"vaultrush/models"
	"vaultrush/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuctionService_CreateAuction_DurationBounds(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewAuctionService(mockFactory)

	_, err := service.CreateAuction(ctx, 111, 1, 500, 30*time.Second)
	assert.Error(t, err)

	_, err = service.CreateAuction(ctx, 111, 1, 500, 72*time.Hour)
	assert.Error(t, err)

	_, err = service.CreateAuction(ctx, 111, 1, 0, time.Hour)
	assert.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestAuctionService_CreateAuction_RequiresOwnership(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockArtifactRepo := new(MockArtifactRepository)
	mockAuctionRepo := new(MockAuctionRepository)

	mockUoW.SetRepositories(nil, mockArtifactRepo, mockAuctionRepo, nil, nil, nil, nil, nil, nil, nil)

	service := NewAuctionService(mockFactory)

	// Owned by someone else
	artifact := testutil.CreateTestArtifact(1, 999, models.RarityRare)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockArtifactRepo.On("GetByID", ctx, int64(1)).Return(artifact, nil)

	auction, err := service.CreateAuction(ctx, 111, 1, 500, time.Hour)

	assert.Error(t, err)
	assert.Nil(t, auction)
	mockAuctionRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestAuctionService_PlaceBid_RefundsPreviousBidder(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockAuctionRepo := new(MockAuctionRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, nil, mockAuctionRepo, nil, nil, nil, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewAuctionService(mockFactory)

	prevBidder := int64(333)
	auction := testutil.CreateTestAuction(1, 999, 5, 500, time.Now().Add(time.Hour))
	auction.CurrentBid = 600
	auction.CurrentBidderID = &prevBidder

	bidder := testutil.CreateTestAccountWithCoins(111, "bidder", 2000)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAuctionRepo.On("GetByID", ctx, int64(1)).Return(auction, nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(111)).Return(bidder, nil)

	// New escrow in, old escrow out, in one transaction
	mockAccountRepo.On("DeductCoins", ctx, int64(111), int64(700)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(333), int64(600)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeAuctionRefund && entry.AccountID == 333 && entry.Amount == 600
	})).Return(nil)
	mockAuctionRepo.On("UpdateBid", ctx, int64(1), int64(111), int64(700)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeAuctionBid && entry.AccountID == 111 && entry.Amount == -700
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	result, err := service.PlaceBid(ctx, 111, 1, 700)

	assert.NoError(t, err)
	assert.Equal(t, int64(700), result.Amount)
	assert.Equal(t, int64(1300), result.NewBalance)
	mockAccountRepo.AssertExpectations(t)
	mockAuctionRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestAuctionService_PlaceBid_MustBeatCurrentBid(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockAuctionRepo := new(MockAuctionRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, mockAuctionRepo, nil, nil, nil, nil, nil, nil, nil)

	service := NewAuctionService(mockFactory)

	prevBidder := int64(333)
	auction := testutil.CreateTestAuction(1, 999, 5, 500, time.Now().Add(time.Hour))
	auction.CurrentBid = 700
	auction.CurrentBidderID = &prevBidder

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAuctionRepo.On("GetByID", ctx, int64(1)).Return(auction, nil)

	result, err := service.PlaceBid(ctx, 111, 1, 700)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "beat the current bid")
	assert.Nil(t, result)
	mockAccountRepo.AssertNotCalled(t, "DeductCoins")
}

func TestAuctionService_PlaceBid_SellerCannotBid(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAuctionRepo := new(MockAuctionRepository)

	mockUoW.SetRepositories(nil, nil, mockAuctionRepo, nil, nil, nil, nil, nil, nil, nil)

	service := NewAuctionService(mockFactory)

	auction := testutil.CreateTestAuction(1, 999, 5, 500, time.Now().Add(time.Hour))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAuctionRepo.On("GetByID", ctx, int64(1)).Return(auction, nil)

	result, err := service.PlaceBid(ctx, 999, 1, 600)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "your own auction")
	assert.Nil(t, result)
}

func TestAuctionService_FinalizeExpired_SettlesWinner(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockArtifactRepo := new(MockArtifactRepository)
	mockAuctionRepo := new(MockAuctionRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockArtifactRepo, mockAuctionRepo, nil, nil, nil, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewAuctionService(mockFactory)

	winner := int64(111)
	auction := testutil.CreateTestAuction(1, 999, 5, 500, time.Now().Add(-time.Hour))
	auction.CurrentBid = 800
	auction.CurrentBidderID = &winner

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAuctionRepo.On("GetExpiredActive", ctx).Return([]*models.Auction{auction}, nil)
	mockAuctionRepo.On("MarkCompleted", ctx, int64(1)).Return(true, nil)
	mockArtifactRepo.On("TransferOwner", ctx, int64(5), int64(999), int64(111)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(999), int64(800)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeAuctionSale && entry.Amount == 800
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	settled, err := service.FinalizeExpired(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, settled)
	mockArtifactRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestAuctionService_FinalizeExpired_SkipsAlreadyClaimed(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockArtifactRepo := new(MockArtifactRepository)
	mockAuctionRepo := new(MockAuctionRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockArtifactRepo, mockAuctionRepo, nil, nil, nil, nil, nil, nil, nil)
	mockUoW.SetEventBus(mockBus)

	service := NewAuctionService(mockFactory)

	winner := int64(111)
	auction := testutil.CreateTestAuction(1, 999, 5, 500, time.Now().Add(-time.Hour))
	auction.CurrentBidderID = &winner

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAuctionRepo.On("GetExpiredActive", ctx).Return([]*models.Auction{auction}, nil)
	// A concurrent run already completed this auction
	mockAuctionRepo.On("MarkCompleted", ctx, int64(1)).Return(false, nil)

	settled, err := service.FinalizeExpired(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, settled)
	mockArtifactRepo.AssertNotCalled(t, "TransferOwner")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestAuctionService_FinalizeExpired_NoBidderNoTransfer(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockArtifactRepo := new(MockArtifactRepository)
	mockAuctionRepo := new(MockAuctionRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockArtifactRepo, mockAuctionRepo, nil, nil, nil, nil, nil, nil, nil)
	mockUoW.SetEventBus(mockBus)

	service := NewAuctionService(mockFactory)

	auction := testutil.CreateTestAuction(1, 999, 5, 500, time.Now().Add(-time.Hour))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAuctionRepo.On("GetExpiredActive", ctx).Return([]*models.Auction{auction}, nil)
	mockAuctionRepo.On("MarkCompleted", ctx, int64(1)).Return(true, nil)
	mockBus.On("Publish", mock.Anything).Return()

	settled, err := service.FinalizeExpired(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, settled)
	mockArtifactRepo.AssertNotCalled(t, "TransferOwner")
	mockAccountRepo.AssertNotCalled(t, "AddCoins")
}
