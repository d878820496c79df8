package service

import (
	"context"
	"fmt"

	"vaultrush/models"
)

type marketService struct {
	uowFactory UnitOfWorkFactory
}

// NewMarketService creates a new token market service
func NewMarketService(uowFactory UnitOfWorkFactory) MarketService {
	return &marketService{uowFactory: uowFactory}
}

// PlaceOrder escrows the submitter's side of a limit order, then sweeps the
// opposite book. Matches always execute at the sell side's price, so a buyer
// who bid above it gets the difference refunded from escrow.
func (s *marketService) PlaceOrder(ctx context.Context, discordID int64, orderType models.OrderType, tokens, pricePerToken int64) (*models.OrderResult, error) {
	if !orderType.Valid() {
		return nil, fmt.Errorf("unknown order type %q", orderType)
	}
	if tokens <= 0 {
		return nil, fmt.Errorf("token quantity must be positive")
	}
	if pricePerToken <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

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

	// Escrow up front so a resting order can always settle.
	switch orderType {
	case models.OrderTypeBuy:
		escrow := tokens * pricePerToken
		if !account.CanAfford(escrow) {
			return nil, fmt.Errorf("insufficient coins: order requires %d in escrow", escrow)
		}
		if err := uow.AccountRepository().DeductCoins(ctx, discordID, escrow); err != nil {
			return nil, fmt.Errorf("failed to escrow coins: %w", err)
		}
		entry := &models.LedgerEntry{
			AccountID:       discordID,
			TransactionType: models.TransactionTypeOrderEscrow,
			Amount:          -escrow,
			Metadata:        map[string]any{"tokens": tokens, "price": pricePerToken},
		}
		if err := RecordLedgerEntry(ctx, uow, entry, account.Coins-escrow); err != nil {
			return nil, err
		}
	case models.OrderTypeSell:
		if !account.HasTokens(tokens) {
			return nil, fmt.Errorf("insufficient tokens: have %d, need %d", account.VaultTokens, tokens)
		}
		if err := uow.AccountRepository().DeductTokens(ctx, discordID, int(tokens)); err != nil {
			return nil, fmt.Errorf("failed to escrow tokens: %w", err)
		}
	}

	order, err := uow.MarketOrderRepository().Create(ctx, discordID, orderType, tokens, pricePerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	matched, err := s.matchOrder(ctx, uow, order)
	if err != nil {
		return nil, err
	}

	refPrice, err := uow.MarketOrderRepository().ReferencePrice(ctx)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.OrderResult{
		Order:          order,
		MatchedTokens:  matched,
		ReferencePrice: refPrice,
	}, nil
}

// matchOrder crosses the incoming order against the resting book until the
// order is filled or prices no longer cross. The incoming order struct is
// updated in place so the caller sees the post-match state.
func (s *marketService) matchOrder(ctx context.Context, uow UnitOfWork, order *models.MarketOrder) (int64, error) {
	var book []*models.MarketOrder
	var err error
	if order.OrderType == models.OrderTypeBuy {
		book, err = uow.MarketOrderRepository().GetOpenSells(ctx)
	} else {
		book, err = uow.MarketOrderRepository().GetOpenBuys(ctx)
	}
	if err != nil {
		return 0, err
	}

	var matched int64
	for _, counter := range book {
		if order.Remaining() == 0 {
			break
		}
		if counter.AccountID == order.AccountID {
			continue
		}

		var buy, sell *models.MarketOrder
		if order.OrderType == models.OrderTypeBuy {
			buy, sell = order, counter
		} else {
			buy, sell = counter, order
		}
		if buy.PricePerToken < sell.PricePerToken {
			break
		}

		qty := order.Remaining()
		if counter.Remaining() < qty {
			qty = counter.Remaining()
		}

		if err := s.settleMatch(ctx, uow, buy, sell, qty); err != nil {
			return 0, err
		}

		order.Filled += qty
		counter.Filled += qty
		matched += qty

		for _, o := range []*models.MarketOrder{order, counter} {
			if err := uow.MarketOrderRepository().AddFilled(ctx, o.ID, qty); err != nil {
				return 0, fmt.Errorf("failed to record fill: %w", err)
			}
			if o.Remaining() == 0 {
				o.Status = models.OrderStatusCompleted
				if err := uow.MarketOrderRepository().MarkCompleted(ctx, o.ID); err != nil {
					return 0, fmt.Errorf("failed to complete order: %w", err)
				}
			}
		}

		if err := uow.MarketOrderRepository().SetReferencePrice(ctx, sell.PricePerToken); err != nil {
			return 0, err
		}
	}

	return matched, nil
}

// settleMatch moves qty tokens from seller escrow to buyer and coins from
// buyer escrow to seller. The buyer escrowed at their own bid; only the sell
// price is charged, the rest of the escrow goes back.
func (s *marketService) settleMatch(ctx context.Context, uow UnitOfWork, buy, sell *models.MarketOrder, qty int64) error {
	proceeds := qty * sell.PricePerToken
	refund := qty * (buy.PricePerToken - sell.PricePerToken)

	if err := uow.AccountRepository().AddCoins(ctx, sell.AccountID, proceeds); err != nil {
		return fmt.Errorf("failed to pay seller: %w", err)
	}
	if err := uow.AccountRepository().AddTokens(ctx, buy.AccountID, int(qty)); err != nil {
		return fmt.Errorf("failed to deliver tokens: %w", err)
	}
	if refund > 0 {
		if err := uow.AccountRepository().AddCoins(ctx, buy.AccountID, refund); err != nil {
			return fmt.Errorf("failed to refund escrow surplus: %w", err)
		}
	}

	sellerEntry := &models.LedgerEntry{
		AccountID:       sell.AccountID,
		TransactionType: models.TransactionTypeOrderFill,
		Amount:          proceeds,
		Metadata: map[string]any{
			"order_id": sell.ID,
			"tokens":   qty,
			"price":    sell.PricePerToken,
		},
	}
	if err := uow.LedgerRepository().Record(ctx, sellerEntry); err != nil {
		return err
	}

	buyerEntry := &models.LedgerEntry{
		AccountID:       buy.AccountID,
		TransactionType: models.TransactionTypeOrderFill,
		Amount:          refund,
		Metadata: map[string]any{
			"order_id": buy.ID,
			"tokens":   qty,
			"price":    sell.PricePerToken,
			"refund":   refund,
		},
	}
	return uow.LedgerRepository().Record(ctx, buyerEntry)
}

func (s *marketService) MyOrders(ctx context.Context, discordID int64) ([]*models.MarketOrder, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.MarketOrderRepository().GetOpenByAccount(ctx, discordID)
}

func (s *marketService) Stats(ctx context.Context) (*models.MarketStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.MarketOrderRepository().Stats(ctx)
}
