package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vaultrush/models"
)

const (
	listingRequirement = 50000
	listingTotalShares = 1000
	listingDividend    = 0.01

	sellBuybackPercent = 95
	priceFloor         = 10
	dividendInterval   = 24 * time.Hour
)

type stockService struct {
	uowFactory UnitOfWorkFactory
	rng        *rand.Rand
}

// NewStockService creates a new vault stock service
func NewStockService(uowFactory UnitOfWorkFactory) StockService {
	return &stockService{
		uowFactory: uowFactory,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// symbolFor derives a ticker from a username: the first four alphanumeric
// characters, uppercased.
func symbolFor(username string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(username) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "VLT"
	}
	return b.String()
}

// ListStock takes a vault public. One stock per owner; listing requires a
// proven balance but costs nothing.
func (s *stockService) ListStock(ctx context.Context, discordID int64) (*models.Stock, error) {
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
	if account.Coins < listingRequirement {
		return nil, fmt.Errorf("listing requires a balance of %d coins", listingRequirement)
	}

	existing, err := uow.StockRepository().GetByOwner(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("vault is already listed as %s", existing.Symbol)
	}

	symbol := symbolFor(account.Username)
	for suffix := 2; ; suffix++ {
		taken, err := uow.StockRepository().GetBySymbol(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if taken == nil {
			break
		}
		symbol = fmt.Sprintf("%s%d", symbolFor(account.Username), suffix)
	}

	initialPrice := int64(2 * account.CoinsPerHour)
	if initialPrice < 100 {
		initialPrice = 100
	}

	stock, err := uow.StockRepository().Create(ctx, &models.Stock{
		OwnerID:         discordID,
		Symbol:          symbol,
		CompanyName:     account.Username + " Vault",
		TotalShares:     listingTotalShares,
		SharesAvailable: listingTotalShares,
		CurrentPrice:    initialPrice,
		DividendRate:    listingDividend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return stock, nil
}

// priceImpact is the price move caused by trading qty shares, proportional
// to the traded fraction of a round lot.
func priceImpact(price, qty int64) int64 {
	impact := price * 2 * qty / (100 * 100)
	if impact < 1 {
		impact = 1
	}
	return impact
}

func (s *stockService) BuyShares(ctx context.Context, discordID int64, symbol string, shares int64) (*models.ShareTradeResult, error) {
	if shares <= 0 {
		return nil, fmt.Errorf("share quantity must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stock, err := uow.StockRepository().GetBySymbol(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("no stock listed under %s", strings.ToUpper(symbol))
	}
	if stock.OwnerID == discordID {
		return nil, fmt.Errorf("you cannot trade your own stock")
	}
	if shares > stock.SharesAvailable {
		return nil, fmt.Errorf("only %d shares available", stock.SharesAvailable)
	}

	buyer, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if buyer == nil {
		return nil, fmt.Errorf("account not found")
	}

	cost := shares * stock.CurrentPrice
	if !buyer.CanAfford(cost) {
		return nil, fmt.Errorf("insufficient coins: %d shares cost %d", shares, cost)
	}

	// Coins flow to the vault owner, who is the counterparty.
	if err := uow.AccountRepository().DebitCoins(ctx, discordID, cost); err != nil {
		return nil, fmt.Errorf("failed to debit buyer: %w", err)
	}
	if err := uow.AccountRepository().AddCoins(ctx, stock.OwnerID, cost); err != nil {
		return nil, fmt.Errorf("failed to pay owner: %w", err)
	}

	holding, err := uow.StockRepository().GetHolding(ctx, stock.ID, discordID)
	if err != nil {
		return nil, err
	}
	if holding == nil {
		if err := uow.StockRepository().CreateHolding(ctx, stock.ID, discordID, shares, stock.CurrentPrice); err != nil {
			return nil, fmt.Errorf("failed to create holding: %w", err)
		}
	} else {
		if err := uow.StockRepository().AddToHolding(ctx, holding.ID, shares, cost); err != nil {
			return nil, fmt.Errorf("failed to update holding: %w", err)
		}
	}

	if err := uow.StockRepository().AdjustAvailableShares(ctx, stock.ID, -shares); err != nil {
		return nil, fmt.Errorf("failed to reserve shares: %w", err)
	}
	if err := uow.StockRepository().UpdatePrice(ctx, stock.ID, stock.CurrentPrice+priceImpact(stock.CurrentPrice, shares)); err != nil {
		return nil, err
	}
	if err := uow.StockRepository().RecordTrade(ctx, &models.StockTrade{
		StockID:       stock.ID,
		AccountID:     discordID,
		TradeType:     models.TradeTypeBuy,
		Shares:        shares,
		PricePerShare: stock.CurrentPrice,
		TotalAmount:   cost,
	}); err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeShareBuy,
		Amount:          -cost,
		Metadata:        map[string]any{"symbol": stock.Symbol, "shares": shares, "price": stock.CurrentPrice},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, buyer.Coins-cost); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ShareTradeResult{
		Symbol:        stock.Symbol,
		Shares:        shares,
		PricePerShare: stock.CurrentPrice,
		TotalAmount:   cost,
		NewBalance:    buyer.Coins - cost,
	}, nil
}

// SellShares sells back to the vault owner at 95% of market value. The owner
// funds the buyback, so the sale fails if the owner cannot cover it.
func (s *stockService) SellShares(ctx context.Context, discordID int64, symbol string, shares int64) (*models.ShareTradeResult, error) {
	if shares <= 0 {
		return nil, fmt.Errorf("share quantity must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stock, err := uow.StockRepository().GetBySymbol(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("no stock listed under %s", strings.ToUpper(symbol))
	}

	holding, err := uow.StockRepository().GetHolding(ctx, stock.ID, discordID)
	if err != nil {
		return nil, err
	}
	if holding == nil || holding.SharesOwned < shares {
		return nil, fmt.Errorf("you do not hold %d shares of %s", shares, stock.Symbol)
	}

	seller, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("account not found")
	}

	value := shares * stock.CurrentPrice
	proceeds := value * sellBuybackPercent / 100

	if err := uow.AccountRepository().DeductCoins(ctx, stock.OwnerID, proceeds); err != nil {
		return nil, fmt.Errorf("vault owner cannot fund the buyback: %w", err)
	}
	if err := uow.AccountRepository().AddCoins(ctx, discordID, proceeds); err != nil {
		return nil, fmt.Errorf("failed to pay seller: %w", err)
	}

	if holding.SharesOwned == shares {
		if err := uow.StockRepository().DeleteHolding(ctx, holding.ID); err != nil {
			return nil, fmt.Errorf("failed to close holding: %w", err)
		}
	} else {
		if err := uow.StockRepository().ReduceHolding(ctx, holding.ID, shares); err != nil {
			return nil, fmt.Errorf("failed to reduce holding: %w", err)
		}
	}

	if err := uow.StockRepository().AdjustAvailableShares(ctx, stock.ID, shares); err != nil {
		return nil, fmt.Errorf("failed to release shares: %w", err)
	}
	newPrice := stock.CurrentPrice - priceImpact(stock.CurrentPrice, shares)
	if newPrice < priceFloor {
		newPrice = priceFloor
	}
	if err := uow.StockRepository().UpdatePrice(ctx, stock.ID, newPrice); err != nil {
		return nil, err
	}
	if err := uow.StockRepository().RecordTrade(ctx, &models.StockTrade{
		StockID:       stock.ID,
		AccountID:     discordID,
		TradeType:     models.TradeTypeSell,
		Shares:        shares,
		PricePerShare: stock.CurrentPrice,
		TotalAmount:   proceeds,
	}); err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeShareSell,
		Amount:          proceeds,
		Metadata:        map[string]any{"symbol": stock.Symbol, "shares": shares, "price": stock.CurrentPrice},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, seller.Coins+proceeds); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ShareTradeResult{
		Symbol:        stock.Symbol,
		Shares:        shares,
		PricePerShare: stock.CurrentPrice,
		TotalAmount:   proceeds,
		Profit:        proceeds - shares*holding.AverageBuyPrice,
		NewBalance:    seller.Coins + proceeds,
	}, nil
}

func (s *stockService) GetPortfolio(ctx context.Context, discordID int64) (*models.Portfolio, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	holdings, err := uow.StockRepository().GetHoldingsByHolder(ctx, discordID)
	if err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{Holdings: holdings}
	for _, h := range holdings {
		invested := h.SharesOwned * h.AverageBuyPrice
		portfolio.TotalInvested += invested
		portfolio.TotalValue += h.CurrentValue()
		portfolio.TotalDividends += h.TotalDividendsEarned
		portfolio.TotalProfitLoss += h.CurrentValue() - invested
	}
	return portfolio, nil
}

func (s *stockService) GetMarket(ctx context.Context) ([]*models.Stock, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.StockRepository().GetAll(ctx)
}

// UpdatePrices reprices every listed stock from its owner's vault
// performance plus a little noise.
func (s *stockService) UpdatePrices(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stocks, err := uow.StockRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	for _, stock := range stocks {
		performance := (stock.OwnerRate / 100) * (1 + float64(stock.OwnerLevel)*0.1)
		noise := (s.rng.Float64() - 0.5) * 0.1
		drift := performance*0.01 + noise

		newPrice := int64(math.Floor(float64(stock.CurrentPrice) * (1 + drift)))
		if newPrice < priceFloor {
			newPrice = priceFloor
		}

		change := float64(newPrice-stock.CurrentPrice) / float64(stock.CurrentPrice) * 100
		if err := uow.StockRepository().SetPrice(ctx, stock.ID, newPrice, change, performance); err != nil {
			return fmt.Errorf("failed to reprice %s: %w", stock.Symbol, err)
		}
	}

	return uow.Commit()
}

// PayDividends mints dividends for every stock that has gone a full interval
// without a payout. Each stock settles in its own transaction so one failure
// does not starve the rest.
func (s *stockService) PayDividends(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	due, err := uow.StockRepository().GetDividendDue(ctx, time.Now().Add(-dividendInterval))
	uow.Rollback()
	if err != nil {
		return err
	}

	for _, stock := range due {
		if err := s.payStockDividends(ctx, stock); err != nil {
			logrus.WithError(err).WithField("symbol", stock.Symbol).Error("Dividend payout failed")
		}
	}
	return nil
}

func (s *stockService) payStockDividends(ctx context.Context, stock *models.Stock) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	holders, err := uow.StockRepository().GetHoldersByStock(ctx, stock.ID)
	if err != nil {
		return err
	}

	perShare := stock.DividendRate * float64(stock.CurrentPrice)
	for _, holding := range holders {
		amount := int64(math.Floor(float64(holding.SharesOwned) * perShare))
		if amount <= 0 {
			continue
		}

		// Dividends are minted, not drawn from the owner.
		if err := uow.AccountRepository().CreditCoins(ctx, holding.HolderID, amount); err != nil {
			return fmt.Errorf("failed to credit dividend: %w", err)
		}
		if err := uow.StockRepository().AddDividendsEarned(ctx, holding.ID, amount); err != nil {
			return err
		}
		if err := uow.StockRepository().RecordDividend(ctx, stock.ID, holding.HolderID, amount, holding.SharesOwned); err != nil {
			return err
		}

		entry := &models.LedgerEntry{
			AccountID:       holding.HolderID,
			TransactionType: models.TransactionTypeDividend,
			Amount:          amount,
			Metadata:        map[string]any{"symbol": stock.Symbol, "shares": holding.SharesOwned},
		}
		if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
			return err
		}
	}

	if err := uow.StockRepository().SetDividendPaid(ctx, stock.ID); err != nil {
		return err
	}
	return uow.Commit()
}
