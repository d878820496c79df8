package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccount_ValidateStake(t *testing.T) {
	account := &Account{Coins: 500}

	assert.NoError(t, account.ValidateStake(100, 10))
	assert.Error(t, account.ValidateStake(5, 10))
	assert.Error(t, account.ValidateStake(600, 10))
}

func TestRarity_Order(t *testing.T) {
	assert.Equal(t, 0, RarityCommon.Order())
	assert.Equal(t, 1, RarityRare.Order())
	assert.Equal(t, 2, RarityEpic.Order())
	assert.Equal(t, 3, RarityLegendary.Order())
	assert.Equal(t, -1, Rarity("Mythic").Order())
	assert.False(t, Rarity("Mythic").Valid())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, UpgradeKindRate.Valid())
	assert.True(t, UpgradeKindSpeed.Valid())
	assert.False(t, UpgradeKind("turbo").Valid())

	assert.True(t, OrderTypeBuy.Valid())
	assert.False(t, OrderType("short").Valid())

	assert.True(t, LoanStatusCancelled.Valid())
	assert.False(t, LoanStatus("defaulted").Valid())

	assert.True(t, AuctionStatusCompleted.Valid())
	assert.False(t, AuctionStatus("expired").Valid())

	assert.True(t, WarStatusActive.Valid())
	assert.False(t, WarStatus("pending").Valid())

	assert.True(t, EventGoldenHour.Valid())
	assert.True(t, EventArtifactStorm.Valid())
	assert.False(t, EventType("double_xp").Valid())

	assert.True(t, BonusKindLuck.Valid())
	assert.False(t, BonusKind("charisma").Valid())
}

func TestLoan_RemainingAndOverdue(t *testing.T) {
	loan := &Loan{
		Principal:  1000,
		TotalOwed:  1250,
		AmountPaid: 400,
		Status:     LoanStatusActive,
		DueDate:    time.Now().Add(-time.Hour),
	}

	assert.Equal(t, int64(850), loan.Remaining())
	assert.True(t, loan.IsOverdue(time.Now()))

	loan.Status = LoanStatusCompleted
	assert.False(t, loan.IsOverdue(time.Now()))

	loan.Status = LoanStatusActive
	loan.DueDate = time.Now().Add(time.Hour)
	assert.False(t, loan.IsOverdue(time.Now()))
}

func TestAuction_ExpiryAndBidder(t *testing.T) {
	now := time.Now()
	auction := &Auction{EndsAt: now.Add(time.Minute)}

	assert.False(t, auction.IsExpired(now))
	assert.True(t, auction.IsExpired(now.Add(time.Minute)))
	assert.False(t, auction.HasBidder())

	bidder := int64(111)
	auction.CurrentBidderID = &bidder
	assert.True(t, auction.HasBidder())
}

func TestMarketOrder_Remaining(t *testing.T) {
	order := &MarketOrder{Tokens: 10, Filled: 4}
	assert.Equal(t, int64(6), order.Remaining())
}

func TestStockHolding_CurrentValue(t *testing.T) {
	holding := &StockHolding{SharesOwned: 30, CurrentPrice: 150}
	assert.Equal(t, int64(4500), holding.CurrentValue())
}

func TestStock_SharesSold(t *testing.T) {
	stock := &Stock{TotalShares: 1000, SharesAvailable: 920}
	assert.Equal(t, int64(80), stock.SharesSold())
}

func TestTimedEvent_IsRunning(t *testing.T) {
	now := time.Now()
	event := &TimedEvent{IsActive: true, EndsAt: now.Add(time.Minute)}

	assert.True(t, event.IsRunning(now))
	assert.False(t, event.IsRunning(now.Add(2*time.Minute)))

	event.IsActive = false
	assert.False(t, event.IsRunning(now))
}

func TestTransactionType_Classification(t *testing.T) {
	// Every type is exactly one of mint, sink or transfer, except the
	// pure bookkeeping entries.
	mints := []TransactionType{
		TransactionTypeCollection, TransactionTypeGameWin,
		TransactionTypeDailyReward, TransactionTypeTriviaReward,
		TransactionTypeDividend,
	}
	for _, tt := range mints {
		assert.True(t, tt.IsMint(), tt.String())
		assert.False(t, tt.IsSink(), tt.String())
		assert.False(t, tt.IsTransfer(), tt.String())
	}

	sinks := []TransactionType{
		TransactionTypeUpgrade, TransactionTypeGameLoss, TransactionTypeRaidFailed,
	}
	for _, tt := range sinks {
		assert.True(t, tt.IsSink(), tt.String())
		assert.False(t, tt.IsMint(), tt.String())
	}

	transfers := []TransactionType{
		TransactionTypeRaidLooted, TransactionTypeOrderFill,
		TransactionTypeShareBuy, TransactionTypeShareSell,
		TransactionTypeAuctionBid, TransactionTypeAuctionRefund, TransactionTypeAuctionSale,
		TransactionTypeLoanFunded, TransactionTypeLoanPayment,
		TransactionTypeContribution,
	}
	for _, tt := range transfers {
		assert.True(t, tt.IsTransfer(), tt.String())
		assert.False(t, tt.IsMint(), tt.String())
		assert.False(t, tt.IsSink(), tt.String())
	}
}
