package service

import (
	"context"
	"time"

	"vaultrush/events"
	"vaultrush/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, discordID int64, username string, startingCoins int64, baseRate float64) (*models.Account, error) {
	args := m.Called(ctx, discordID, username, startingCoins, baseRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateUsername(ctx context.Context, discordID int64, username string) error {
	args := m.Called(ctx, discordID, username)
	return args.Error(0)
}

func (m *MockAccountRepository) CreditCoins(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DebitCoins(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) AddCoins(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductCoins(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) AddTokens(ctx context.Context, discordID int64, tokens int) error {
	args := m.Called(ctx, discordID, tokens)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductTokens(ctx context.Context, discordID int64, tokens int) error {
	args := m.Called(ctx, discordID, tokens)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateCollection(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockAccountRepository) TouchActivity(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockAccountRepository) IncreaseVaultLevel(ctx context.Context, discordID int64, rateBoost float64) error {
	args := m.Called(ctx, discordID, rateBoost)
	return args.Error(0)
}

func (m *MockAccountRepository) IncreaseSpeedLevel(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockAccountRepository) TopByCoins(ctx context.Context, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Totals(ctx context.Context) (int64, int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) GetByID(ctx context.Context, id int64) (*models.Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*models.Artifact, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockArtifactRepository) SumBonus(ctx context.Context, ownerID int64, kind models.BonusKind) (float64, error) {
	args := m.Called(ctx, ownerID, kind)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockArtifactRepository) TransferOwner(ctx context.Context, artifactID, fromID, toID int64) error {
	args := m.Called(ctx, artifactID, fromID, toID)
	return args.Error(0)
}

// MockAuctionRepository is a mock implementation of AuctionRepository
type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) Create(ctx context.Context, artifactID, sellerID, startingBid int64, endsAt time.Time) (*models.Auction, error) {
	args := m.Called(ctx, artifactID, sellerID, startingBid, endsAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) GetByID(ctx context.Context, id int64) (*models.Auction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) GetActive(ctx context.Context) ([]*models.Auction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) GetExpiredActive(ctx context.Context) ([]*models.Auction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) UpdateBid(ctx context.Context, auctionID, bidderID, amount int64) error {
	args := m.Called(ctx, auctionID, bidderID, amount)
	return args.Error(0)
}

func (m *MockAuctionRepository) MarkCompleted(ctx context.Context, auctionID int64) (bool, error) {
	args := m.Called(ctx, auctionID)
	return args.Bool(0), args.Error(1)
}

// MockMarketOrderRepository is a mock implementation of MarketOrderRepository
type MockMarketOrderRepository struct {
	mock.Mock
}

func (m *MockMarketOrderRepository) Create(ctx context.Context, accountID int64, orderType models.OrderType, tokens, pricePerToken int64) (*models.MarketOrder, error) {
	args := m.Called(ctx, accountID, orderType, tokens, pricePerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketOrder), args.Error(1)
}

func (m *MockMarketOrderRepository) GetByID(ctx context.Context, id int64) (*models.MarketOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketOrder), args.Error(1)
}

func (m *MockMarketOrderRepository) GetOpenBuys(ctx context.Context) ([]*models.MarketOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MarketOrder), args.Error(1)
}

func (m *MockMarketOrderRepository) GetOpenSells(ctx context.Context) ([]*models.MarketOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MarketOrder), args.Error(1)
}

func (m *MockMarketOrderRepository) GetOpenByAccount(ctx context.Context, accountID int64) ([]*models.MarketOrder, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MarketOrder), args.Error(1)
}

func (m *MockMarketOrderRepository) AddFilled(ctx context.Context, orderID, tokens int64) error {
	args := m.Called(ctx, orderID, tokens)
	return args.Error(0)
}

func (m *MockMarketOrderRepository) MarkCompleted(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockMarketOrderRepository) ReferencePrice(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMarketOrderRepository) SetReferencePrice(ctx context.Context, price int64) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockMarketOrderRepository) Stats(ctx context.Context) (*models.MarketStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketStats), args.Error(1)
}

// MockStockRepository is a mock implementation of StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, stock *models.Stock) (*models.Stock, error) {
	args := m.Called(ctx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) GetByOwner(ctx context.Context, ownerID int64) (*models.Stock, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) GetAll(ctx context.Context) ([]*models.Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) SetPrice(ctx context.Context, stockID, price int64, change24h, performance float64) error {
	args := m.Called(ctx, stockID, price, change24h, performance)
	return args.Error(0)
}

func (m *MockStockRepository) UpdatePrice(ctx context.Context, stockID, newPrice int64) error {
	args := m.Called(ctx, stockID, newPrice)
	return args.Error(0)
}

func (m *MockStockRepository) AdjustAvailableShares(ctx context.Context, stockID, delta int64) error {
	args := m.Called(ctx, stockID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) GetHolding(ctx context.Context, stockID, holderID int64) (*models.StockHolding, error) {
	args := m.Called(ctx, stockID, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockHolding), args.Error(1)
}

func (m *MockStockRepository) CreateHolding(ctx context.Context, stockID, holderID, shares, pricePerShare int64) error {
	args := m.Called(ctx, stockID, holderID, shares, pricePerShare)
	return args.Error(0)
}

func (m *MockStockRepository) AddToHolding(ctx context.Context, holdingID, shares, totalCost int64) error {
	args := m.Called(ctx, holdingID, shares, totalCost)
	return args.Error(0)
}

func (m *MockStockRepository) ReduceHolding(ctx context.Context, holdingID, shares int64) error {
	args := m.Called(ctx, holdingID, shares)
	return args.Error(0)
}

func (m *MockStockRepository) DeleteHolding(ctx context.Context, holdingID int64) error {
	args := m.Called(ctx, holdingID)
	return args.Error(0)
}

func (m *MockStockRepository) GetHoldingsByHolder(ctx context.Context, holderID int64) ([]*models.StockHolding, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockHolding), args.Error(1)
}

func (m *MockStockRepository) GetHoldersByStock(ctx context.Context, stockID int64) ([]*models.StockHolding, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockHolding), args.Error(1)
}

func (m *MockStockRepository) AddDividendsEarned(ctx context.Context, holdingID, amount int64) error {
	args := m.Called(ctx, holdingID, amount)
	return args.Error(0)
}

func (m *MockStockRepository) RecordTrade(ctx context.Context, trade *models.StockTrade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockStockRepository) RecordDividend(ctx context.Context, stockID, holderID, amount, sharesHeld int64) error {
	args := m.Called(ctx, stockID, holderID, amount, sharesHeld)
	return args.Error(0)
}

func (m *MockStockRepository) GetDividendDue(ctx context.Context, cutoff time.Time) ([]*models.Stock, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) SetDividendPaid(ctx context.Context, stockID int64) error {
	args := m.Called(ctx, stockID)
	return args.Error(0)
}

// MockLoanRepository is a mock implementation of LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, lenderID, borrowerID, principal int64, interestRate float64, totalOwed int64, dueDate time.Time) (*models.Loan, error) {
	args := m.Called(ctx, lenderID, borrowerID, principal, interestRate, totalOwed, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id int64) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByBorrower(ctx context.Context, borrowerID int64) ([]*models.Loan, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByLender(ctx context.Context, lenderID int64) ([]*models.Loan, error) {
	args := m.Called(ctx, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetOverdueActive(ctx context.Context) ([]*models.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) AddPayment(ctx context.Context, loanID, amount int64) error {
	args := m.Called(ctx, loanID, amount)
	return args.Error(0)
}

func (m *MockLoanRepository) SetStatus(ctx context.Context, loanID int64, status models.LoanStatus) error {
	args := m.Called(ctx, loanID, status)
	return args.Error(0)
}

// MockAllianceRepository is a mock implementation of AllianceRepository
type MockAllianceRepository struct {
	mock.Mock
}

func (m *MockAllianceRepository) GetOrCreate(ctx context.Context, guildID int64, guildName string) (*models.Alliance, error) {
	args := m.Called(ctx, guildID, guildName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alliance), args.Error(1)
}

func (m *MockAllianceRepository) GetByGuild(ctx context.Context, guildID int64) (*models.Alliance, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alliance), args.Error(1)
}

func (m *MockAllianceRepository) AddContribution(ctx context.Context, guildID, amount int64) error {
	args := m.Called(ctx, guildID, amount)
	return args.Error(0)
}

func (m *MockAllianceRepository) RecordContribution(ctx context.Context, guildID, accountID, amount int64) error {
	args := m.Called(ctx, guildID, accountID, amount)
	return args.Error(0)
}

func (m *MockAllianceRepository) AddCoins(ctx context.Context, guildID, amount int64) error {
	args := m.Called(ctx, guildID, amount)
	return args.Error(0)
}

func (m *MockAllianceRepository) DeductCoinsFloor(ctx context.Context, guildID, amount int64) error {
	args := m.Called(ctx, guildID, amount)
	return args.Error(0)
}

func (m *MockAllianceRepository) Upgrade(ctx context.Context, guildID, cost, powerGain int64) error {
	args := m.Called(ctx, guildID, cost, powerGain)
	return args.Error(0)
}

func (m *MockAllianceRepository) SetWarEnabled(ctx context.Context, guildID int64, enabled bool) error {
	args := m.Called(ctx, guildID, enabled)
	return args.Error(0)
}

func (m *MockAllianceRepository) TopByPower(ctx context.Context, limit int, warEnabledOnly bool) ([]*models.Alliance, error) {
	args := m.Called(ctx, limit, warEnabledOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Alliance), args.Error(1)
}

func (m *MockAllianceRepository) TopContributors(ctx context.Context, guildID int64, limit int) ([]*models.Contributor, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contributor), args.Error(1)
}

// MockWarRepository is a mock implementation of WarRepository
type MockWarRepository struct {
	mock.Mock
}

func (m *MockWarRepository) CreateEntry(ctx context.Context, weekNumber int, guildID, vaultPower int64) error {
	args := m.Called(ctx, weekNumber, guildID, vaultPower)
	return args.Error(0)
}

func (m *MockWarRepository) GetActiveByWeek(ctx context.Context, weekNumber int) ([]*models.WarEntry, error) {
	args := m.Called(ctx, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WarEntry), args.Error(1)
}

func (m *MockWarRepository) GetByWeek(ctx context.Context, weekNumber int) ([]*models.WarEntry, error) {
	args := m.Called(ctx, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WarEntry), args.Error(1)
}

func (m *MockWarRepository) CompleteEntry(ctx context.Context, entryID int64, rank int, coinsWon, coinsLost int64) (bool, error) {
	args := m.Called(ctx, entryID, rank, coinsWon, coinsLost)
	return args.Bool(0), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, eventType models.EventType, multiplier float64, endsAt time.Time) (*models.TimedEvent, error) {
	args := m.Called(ctx, eventType, multiplier, endsAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimedEvent), args.Error(1)
}

func (m *MockEventRepository) GetActive(ctx context.Context) ([]*models.TimedEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TimedEvent), args.Error(1)
}

func (m *MockEventRepository) HasActiveOfType(ctx context.Context, eventType models.EventType) (bool, error) {
	args := m.Called(ctx, eventType)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) LastByType(ctx context.Context, accountID int64, txType models.TransactionType) (*models.LedgerEntry, error) {
	args := m.Called(ctx, accountID, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountByTypeSince(ctx context.Context, accountID int64, txType models.TransactionType, since time.Time) (int, error) {
	args := m.Called(ctx, accountID, txType, since)
	return args.Int(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// plain fields so tests configure only the ones an operation touches.
type MockUnitOfWork struct {
	mock.Mock

	accounts  AccountRepository
	artifacts ArtifactRepository
	auctions  AuctionRepository
	orders    MarketOrderRepository
	stocks    StockRepository
	loans     LoanRepository
	alliances AllianceRepository
	wars      WarRepository
	events    EventRepository
	ledger    LedgerRepository
	bus       EventPublisher
}

// SetRepositories wires the mock repositories the test cares about; nil is
// fine for the rest.
func (m *MockUnitOfWork) SetRepositories(
	accounts AccountRepository,
	artifacts ArtifactRepository,
	auctions AuctionRepository,
	orders MarketOrderRepository,
	stocks StockRepository,
	loans LoanRepository,
	alliances AllianceRepository,
	wars WarRepository,
	events EventRepository,
	ledger LedgerRepository,
) {
	m.accounts = accounts
	m.artifacts = artifacts
	m.auctions = auctions
	m.orders = orders
	m.stocks = stocks
	m.loans = loans
	m.alliances = alliances
	m.wars = wars
	m.events = events
	m.ledger = ledger
}

// SetEventBus wires the event publisher returned by EventBus.
func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.bus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accounts
}

func (m *MockUnitOfWork) ArtifactRepository() ArtifactRepository {
	return m.artifacts
}

func (m *MockUnitOfWork) AuctionRepository() AuctionRepository {
	return m.auctions
}

func (m *MockUnitOfWork) MarketOrderRepository() MarketOrderRepository {
	return m.orders
}

func (m *MockUnitOfWork) StockRepository() StockRepository {
	return m.stocks
}

func (m *MockUnitOfWork) LoanRepository() LoanRepository {
	return m.loans
}

func (m *MockUnitOfWork) AllianceRepository() AllianceRepository {
	return m.alliances
}

func (m *MockUnitOfWork) WarRepository() WarRepository {
	return m.wars
}

func (m *MockUnitOfWork) EventRepository() EventRepository {
	return m.events
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository {
	return m.ledger
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.bus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
