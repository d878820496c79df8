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

func TestPendingIncome_BasicAccrual(t *testing.T) {
	now := time.Now()
	account := testutil.CreateTestAccount(123456, "testuser")
	account.CoinsPerHour = 100
	account.VaultSpeedLevel = 0
	account.LastCollection = now.Add(-2 * time.Hour)
	account.LastActivity = now

	// 2 hours at 100/hour with no bonuses
	assert.Equal(t, int64(200), pendingIncome(account, 0, now))
}

func TestPendingIncome_InactivityCapsAccrual(t *testing.T) {
	now := time.Now()
	account := testutil.CreateTestAccount(123456, "testuser")
	account.CoinsPerHour = 100
	account.VaultSpeedLevel = 0
	account.LastCollection = now.Add(-24 * time.Hour)
	account.LastActivity = now.Add(-24 * time.Hour)

	// Accrual stops 6 hours after the last activity
	assert.Equal(t, int64(600), pendingIncome(account, 0, now))
}

func TestPendingIncome_ZeroWhenCutoffBeforeCollection(t *testing.T) {
	now := time.Now()
	account := testutil.CreateTestAccount(123456, "testuser")
	account.CoinsPerHour = 100
	account.LastActivity = now.Add(-48 * time.Hour)
	account.LastCollection = now.Add(-1 * time.Hour)

	assert.Equal(t, int64(0), pendingIncome(account, 0, now))
}

func TestPendingIncome_BonusesMultiply(t *testing.T) {
	now := time.Now()
	account := testutil.CreateTestAccount(123456, "testuser")
	account.CoinsPerHour = 100
	account.VaultSpeedLevel = 2
	account.LastCollection = now.Add(-1 * time.Hour)
	account.LastActivity = now

	// 100 * (1 + 0.5 artifact bonus) * (1 + 0.2 speed bonus) = 180
	assert.Equal(t, int64(180), pendingIncome(account, 0.5, now))
}

func TestUpgradeCost_Scales(t *testing.T) {
	assert.Equal(t, int64(1000), upgradeCost(1))
	assert.Equal(t, int64(1500), upgradeCost(2))
	assert.Equal(t, int64(2250), upgradeCost(3))
}

func TestVaultService_GetOrCreateAccount_ExistingAccount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	service := NewVaultService(mockFactory)

	existing := testutil.CreateTestAccount(123456, "testuser")

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit() expected since the account exists unchanged
	mockAccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existing, nil)

	account, err := service.GetOrCreateAccount(ctx, 123456, "testuser")

	assert.NoError(t, err)
	assert.Equal(t, existing, account)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertNotCalled(t, "Create")
}

func TestVaultService_GetOrCreateAccount_RenamedAccount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	service := NewVaultService(mockFactory)

	existing := testutil.CreateTestAccount(123456, "oldname")

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existing, nil)
	mockAccountRepo.On("UpdateUsername", ctx, int64(123456), "newname").Return(nil)

	account, err := service.GetOrCreateAccount(ctx, 123456, "newname")

	assert.NoError(t, err)
	assert.Equal(t, "newname", account.Username)
	mockAccountRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestVaultService_Upgrade_UnknownKind(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewVaultService(mockFactory)

	result, err := service.Upgrade(ctx, 123456, models.UpgradeKind("luck"))

	assert.Error(t, err)
	assert.Nil(t, result)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestVaultService_Upgrade_RateTrack(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, nil, nil, nil, nil, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewVaultService(mockFactory)

	account := testutil.CreateTestAccountWithCoins(123456, "testuser", 5000)
	account.VaultLevel = 2

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(account, nil)
	// Level 2 -> 3 costs 1500
	mockAccountRepo.On("DebitCoins", ctx, int64(123456), int64(1500)).Return(nil)
	mockAccountRepo.On("IncreaseVaultLevel", ctx, int64(123456), rateUpgradeBoost).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeUpgrade && entry.Amount == -1500
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	result, err := service.Upgrade(ctx, 123456, models.UpgradeKindRate)

	assert.NoError(t, err)
	assert.Equal(t, int64(1500), result.Cost)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, int64(3500), result.NewBalance)
	mockAccountRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestVaultService_Upgrade_CannotAfford(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	service := NewVaultService(mockFactory)

	account := testutil.CreateTestAccountWithCoins(123456, "testuser", 100)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(account, nil)

	result, err := service.Upgrade(ctx, 123456, models.UpgradeKindSpeed)

	assert.Error(t, err)
	assert.Nil(t, result)
	mockAccountRepo.AssertNotCalled(t, "DebitCoins")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestVaultService_Collect_GoldenHourMultiplier(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockArtifactRepo := new(MockArtifactRepository)
	mockEventRepo := new(MockEventRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockArtifactRepo, nil, nil, nil, nil, nil, nil, mockEventRepo, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewVaultService(mockFactory)

	now := time.Now()
	account := testutil.CreateTestAccountWithCoins(123456, "testuser", 1000)
	account.CoinsPerHour = 100
	account.VaultSpeedLevel = 0
	account.LastCollection = now.Add(-2 * time.Hour)
	account.LastActivity = now

	goldenHour := &models.TimedEvent{
		EventType:  models.EventGoldenHour,
		Multiplier: 2.0,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(account, nil)
	mockArtifactRepo.On("SumBonus", ctx, int64(123456), models.BonusKindCoinRate).Return(0.0, nil)
	mockArtifactRepo.On("SumBonus", ctx, int64(123456), models.BonusKindLuck).Return(-1.0, nil)
	mockEventRepo.On("GetActive", ctx).Return([]*models.TimedEvent{goldenHour}, nil)

	// 2 hours at 100/hour, doubled by the golden hour
	mockAccountRepo.On("CreditCoins", ctx, int64(123456), int64(400)).Return(nil)
	mockAccountRepo.On("UpdateCollection", ctx, int64(123456)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *models.LedgerEntry) bool {
		return entry.TransactionType == models.TransactionTypeCollection && entry.Amount == 400
	})).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	result, err := service.Collect(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, int64(400), result.Collected)
	assert.Equal(t, 2.0, result.Multiplier)
	assert.Equal(t, int64(1400), result.NewBalance)
	// A -1.0 luck bonus pins the drop chance below zero, so no artifact
	assert.Nil(t, result.DroppedArtifact)
	mockAccountRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestVaultService_Collect_NothingPendingStillTouchesCollection(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockArtifactRepo := new(MockArtifactRepository)
	mockEventRepo := new(MockEventRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockArtifactRepo, nil, nil, nil, nil, nil, nil, mockEventRepo, mockLedgerRepo)
	mockUoW.SetEventBus(mockBus)

	service := NewVaultService(mockFactory)

	now := time.Now()
	account := testutil.CreateTestAccountWithCoins(123456, "testuser", 1000)
	account.LastCollection = now
	account.LastActivity = now

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockAccountRepo.On("GetByDiscordID", ctx, int64(123456)).Return(account, nil)
	mockArtifactRepo.On("SumBonus", ctx, int64(123456), models.BonusKindCoinRate).Return(0.0, nil)
	mockEventRepo.On("GetActive", ctx).Return([]*models.TimedEvent{}, nil)
	mockAccountRepo.On("UpdateCollection", ctx, int64(123456)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.Anything).Return(nil)
	mockBus.On("Publish", mock.Anything).Return()

	result, err := service.Collect(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.Collected)
	assert.Equal(t, int64(1000), result.NewBalance)
	mockAccountRepo.AssertNotCalled(t, "CreditCoins")
}
