package service

import (
	"context"
	"time"

	"vaultrush/events"
	"vaultrush/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error)
	Create(ctx context.Context, discordID int64, username string, startingCoins int64, baseRate float64) (*models.Account, error)
	UpdateUsername(ctx context.Context, discordID int64, username string) error
	CreditCoins(ctx context.Context, discordID int64, amount int64) error
	DebitCoins(ctx context.Context, discordID int64, amount int64) error
	AddCoins(ctx context.Context, discordID int64, amount int64) error
	DeductCoins(ctx context.Context, discordID int64, amount int64) error
	AddTokens(ctx context.Context, discordID int64, tokens int) error
	DeductTokens(ctx context.Context, discordID int64, tokens int) error
	UpdateCollection(ctx context.Context, discordID int64) error
	TouchActivity(ctx context.Context, discordID int64) error
	IncreaseVaultLevel(ctx context.Context, discordID int64, rateBoost float64) error
	IncreaseSpeedLevel(ctx context.Context, discordID int64) error
	TopByCoins(ctx context.Context, limit int) ([]*models.Account, error)
	Totals(ctx context.Context) (accountCount int64, totalCoins int64, totalTokens int64, err error)
}

// ArtifactRepository defines the interface for artifact data access
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error)
	GetByID(ctx context.Context, id int64) (*models.Artifact, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*models.Artifact, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	SumBonus(ctx context.Context, ownerID int64, kind models.BonusKind) (float64, error)
	TransferOwner(ctx context.Context, artifactID, fromID, toID int64) error
}

// AuctionRepository defines the interface for auction data access
type AuctionRepository interface {
	Create(ctx context.Context, artifactID, sellerID, startingBid int64, endsAt time.Time) (*models.Auction, error)
	GetByID(ctx context.Context, id int64) (*models.Auction, error)
	GetActive(ctx context.Context) ([]*models.Auction, error)
	GetExpiredActive(ctx context.Context) ([]*models.Auction, error)
	UpdateBid(ctx context.Context, auctionID, bidderID, amount int64) error
	MarkCompleted(ctx context.Context, auctionID int64) (bool, error)
}

// MarketOrderRepository defines the interface for token order book access
type MarketOrderRepository interface {
	Create(ctx context.Context, accountID int64, orderType models.OrderType, tokens, pricePerToken int64) (*models.MarketOrder, error)
	GetByID(ctx context.Context, id int64) (*models.MarketOrder, error)
	GetOpenBuys(ctx context.Context) ([]*models.MarketOrder, error)
	GetOpenSells(ctx context.Context) ([]*models.MarketOrder, error)
	GetOpenByAccount(ctx context.Context, accountID int64) ([]*models.MarketOrder, error)
	AddFilled(ctx context.Context, orderID, tokens int64) error
	MarkCompleted(ctx context.Context, orderID int64) error
	ReferencePrice(ctx context.Context) (int64, error)
	SetReferencePrice(ctx context.Context, price int64) error
	Stats(ctx context.Context) (*models.MarketStats, error)
}

// StockRepository defines the interface for vault stock data access
type StockRepository interface {
	Create(ctx context.Context, stock *models.Stock) (*models.Stock, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	GetByOwner(ctx context.Context, ownerID int64) (*models.Stock, error)
	GetAll(ctx context.Context) ([]*models.Stock, error)
	SetPrice(ctx context.Context, stockID, price int64, change24h, performance float64) error
	UpdatePrice(ctx context.Context, stockID, newPrice int64) error
	AdjustAvailableShares(ctx context.Context, stockID, delta int64) error
	GetHolding(ctx context.Context, stockID, holderID int64) (*models.StockHolding, error)
	CreateHolding(ctx context.Context, stockID, holderID, shares, pricePerShare int64) error
	AddToHolding(ctx context.Context, holdingID, shares, totalCost int64) error
	ReduceHolding(ctx context.Context, holdingID, shares int64) error
	DeleteHolding(ctx context.Context, holdingID int64) error
	GetHoldingsByHolder(ctx context.Context, holderID int64) ([]*models.StockHolding, error)
	GetHoldersByStock(ctx context.Context, stockID int64) ([]*models.StockHolding, error)
	AddDividendsEarned(ctx context.Context, holdingID, amount int64) error
	RecordTrade(ctx context.Context, trade *models.StockTrade) error
	RecordDividend(ctx context.Context, stockID, holderID, amount, sharesHeld int64) error
	GetDividendDue(ctx context.Context, cutoff time.Time) ([]*models.Stock, error)
	SetDividendPaid(ctx context.Context, stockID int64) error
}

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	Create(ctx context.Context, lenderID, borrowerID, principal int64, interestRate float64, totalOwed int64, dueDate time.Time) (*models.Loan, error)
	GetByID(ctx context.Context, id int64) (*models.Loan, error)
	GetByBorrower(ctx context.Context, borrowerID int64) ([]*models.Loan, error)
	GetByLender(ctx context.Context, lenderID int64) ([]*models.Loan, error)
	GetOverdueActive(ctx context.Context) ([]*models.Loan, error)
	AddPayment(ctx context.Context, loanID, amount int64) error
	SetStatus(ctx context.Context, loanID int64, status models.LoanStatus) error
}

// AllianceRepository defines the interface for alliance data access
type AllianceRepository interface {
	GetOrCreate(ctx context.Context, guildID int64, guildName string) (*models.Alliance, error)
	GetByGuild(ctx context.Context, guildID int64) (*models.Alliance, error)
	AddContribution(ctx context.Context, guildID, amount int64) error
	RecordContribution(ctx context.Context, guildID, accountID, amount int64) error
	AddCoins(ctx context.Context, guildID, amount int64) error
	DeductCoinsFloor(ctx context.Context, guildID, amount int64) error
	Upgrade(ctx context.Context, guildID, cost, powerGain int64) error
	SetWarEnabled(ctx context.Context, guildID int64, enabled bool) error
	TopByPower(ctx context.Context, limit int, warEnabledOnly bool) ([]*models.Alliance, error)
	TopContributors(ctx context.Context, guildID int64, limit int) ([]*models.Contributor, error)
}

// WarRepository defines the interface for vault war data access
type WarRepository interface {
	CreateEntry(ctx context.Context, weekNumber int, guildID, vaultPower int64) error
	GetActiveByWeek(ctx context.Context, weekNumber int) ([]*models.WarEntry, error)
	GetByWeek(ctx context.Context, weekNumber int) ([]*models.WarEntry, error)
	CompleteEntry(ctx context.Context, entryID int64, rank int, coinsWon, coinsLost int64) (bool, error)
}

// EventRepository defines the interface for timed event data access
type EventRepository interface {
	Create(ctx context.Context, eventType models.EventType, multiplier float64, endsAt time.Time) (*models.TimedEvent, error)
	GetActive(ctx context.Context) ([]*models.TimedEvent, error)
	HasActiveOfType(ctx context.Context, eventType models.EventType) (bool, error)
	DeactivateExpired(ctx context.Context) (int64, error)
}

// LedgerRepository defines the interface for the audit ledger
type LedgerRepository interface {
	Record(ctx context.Context, entry *models.LedgerEntry) error
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.LedgerEntry, error)
	LastByType(ctx context.Context, accountID int64, txType models.TransactionType) (*models.LedgerEntry, error)
	CountByTypeSince(ctx context.Context, accountID int64, txType models.TransactionType, since time.Time) (int, error)
}

// EventPublisher queues domain events for emission after commit
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents a transactional boundary for multi-repository
// operations. Repositories obtained from it share one transaction; queued
// events are emitted only after a successful commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() AccountRepository
	ArtifactRepository() ArtifactRepository
	AuctionRepository() AuctionRepository
	MarketOrderRepository() MarketOrderRepository
	StockRepository() StockRepository
	LoanRepository() LoanRepository
	AllianceRepository() AllianceRepository
	WarRepository() WarRepository
	EventRepository() EventRepository
	LedgerRepository() LedgerRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// VaultService defines the interface for accounts and passive income
type VaultService interface {
	// GetOrCreateAccount retrieves an existing account or creates one with the starting balance
	GetOrCreateAccount(ctx context.Context, discordID int64, username string) (*models.Account, error)

	// PendingIncome returns what a collect would currently pay, without mutating
	PendingIncome(ctx context.Context, discordID int64) (int64, error)

	// Collect credits accrued income and may drop an artifact
	Collect(ctx context.Context, discordID int64) (*models.CollectResult, error)

	// Upgrade buys the next vault rate or speed level
	Upgrade(ctx context.Context, discordID int64, kind models.UpgradeKind) (*models.UpgradeResult, error)

	// VaultInfo returns the account's vault summary
	VaultInfo(ctx context.Context, discordID int64) (*models.VaultInfo, error)

	// Leaderboard returns the richest accounts
	Leaderboard(ctx context.Context, limit int) ([]*models.Account, error)
}

// GameService defines the interface for wager mini-games
type GameService interface {
	PlayCoinFlip(ctx context.Context, discordID int64, stake int64, call models.CoinSide) (*models.CoinFlipResult, error)
	PlayDice(ctx context.Context, discordID int64, stake int64, prediction int) (*models.DiceResult, error)
	PlayBlackjack(ctx context.Context, discordID int64, stake int64) (*models.BlackjackResult, error)
	PlaySlots(ctx context.Context, discordID int64, stake int64) (*models.SlotsResult, error)
	PlayRoulette(ctx context.Context, discordID int64, stake int64, bet models.RouletteBet) (*models.RouletteResult, error)
	PlayRPS(ctx context.Context, discordID int64, stake int64, choice models.RPSChoice) (*models.RPSResult, error)

	// DrawTrivia returns a question; AnswerTrivia settles it
	DrawTrivia(ctx context.Context) (*models.TriviaQuestion, error)
	AnswerTrivia(ctx context.Context, discordID int64, questionID int, answer int, reward int64) (*models.TriviaResult, error)

	BuyLotteryTicket(ctx context.Context, discordID int64) (*models.LotteryResult, error)
	ClaimDaily(ctx context.Context, discordID int64) (*models.DailyResult, error)
	Raid(ctx context.Context, attackerID, targetID int64) (*models.RaidResult, error)
	OpenCrate(ctx context.Context, discordID int64) (*models.CrateResult, error)
}

// MarketService defines the interface for the vault token order book
type MarketService interface {
	// PlaceOrder escrows and submits a limit order, matching it immediately
	PlaceOrder(ctx context.Context, discordID int64, orderType models.OrderType, tokens, pricePerToken int64) (*models.OrderResult, error)

	// MyOrders returns the account's resting orders
	MyOrders(ctx context.Context, discordID int64) ([]*models.MarketOrder, error)

	// Stats returns the order book overview
	Stats(ctx context.Context) (*models.MarketStats, error)
}

// StockService defines the interface for the per-vault share market
type StockService interface {
	// ListStock takes a vault public, creating its stock
	ListStock(ctx context.Context, discordID int64) (*models.Stock, error)

	BuyShares(ctx context.Context, discordID int64, symbol string, shares int64) (*models.ShareTradeResult, error)
	SellShares(ctx context.Context, discordID int64, symbol string, shares int64) (*models.ShareTradeResult, error)

	GetPortfolio(ctx context.Context, discordID int64) (*models.Portfolio, error)
	GetMarket(ctx context.Context) ([]*models.Stock, error)

	// UpdatePrices reprices every stock from its owner's vault performance
	UpdatePrices(ctx context.Context) error

	// PayDividends mints dividends for stocks due a payout
	PayDividends(ctx context.Context) error
}

// AuctionService defines the interface for artifact auctions
type AuctionService interface {
	CreateAuction(ctx context.Context, sellerID, artifactID, startingBid int64, duration time.Duration) (*models.Auction, error)
	PlaceBid(ctx context.Context, bidderID, auctionID, amount int64) (*models.BidResult, error)
	ActiveAuctions(ctx context.Context) ([]*models.Auction, error)

	// FinalizeExpired settles every ended auction, exactly once each
	FinalizeExpired(ctx context.Context) (int, error)
}

// LoanService defines the interface for peer-to-peer loans
type LoanService interface {
	CreateLoan(ctx context.Context, lenderID, borrowerID, principal int64, interestRate float64, duration time.Duration) (*models.Loan, error)
	Repay(ctx context.Context, borrowerID, loanID, amount int64) (*models.RepayResult, error)
	Cancel(ctx context.Context, lenderID, loanID int64) error
	LoansFor(ctx context.Context, discordID int64) (borrowed []*models.Loan, lent []*models.Loan, err error)

	// CollectOverdue force-repays what overdue borrowers can afford
	CollectOverdue(ctx context.Context) (int, error)
}

// AllianceService defines the interface for guild pooled vaults
type AllianceService interface {
	Contribute(ctx context.Context, guildID int64, guildName string, discordID, amount int64) (*models.Alliance, error)
	UpgradeVault(ctx context.Context, guildID int64) (*models.AllianceUpgradeResult, error)
	Info(ctx context.Context, guildID int64, guildName string) (*models.AllianceInfo, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.Alliance, error)
	SetWarEnabled(ctx context.Context, guildID int64, enabled bool) error
}

// WarService defines the interface for weekly vault wars
type WarService interface {
	// StartWar snapshots this week's contenders
	StartWar(ctx context.Context) (int, error)

	// FinalizeWar settles a week's entries and redistributes the pool
	FinalizeWar(ctx context.Context, weekNumber int) (*models.WarResult, error)

	// Rankings returns a week's standings
	Rankings(ctx context.Context, weekNumber int) ([]*models.WarEntry, error)
}

// TimedEventService defines the interface for server-wide events
type TimedEventService interface {
	StartGoldenHour(ctx context.Context) (*models.TimedEvent, error)
	StartArtifactStorm(ctx context.Context) (*models.TimedEvent, error)
	ActiveEvents(ctx context.Context) ([]*models.TimedEvent, error)

	// ExpireEvents deactivates ended events
	ExpireEvents(ctx context.Context) (int64, error)

	// MaybeStartRandom rolls for a spontaneous event
	MaybeStartRandom(ctx context.Context) (*models.TimedEvent, error)
}

// ArtifactService defines the interface for artifact collections
type ArtifactService interface {
	ListArtifacts(ctx context.Context, discordID int64) ([]*models.Artifact, error)
}

// StatsService defines the interface for aggregate economy stats
type StatsService interface {
	EconomyStats(ctx context.Context) (*models.EconomyStats, error)
}
