package repository

import (
	"context"
	"fmt"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

// MarketOrderRepository implements the MarketOrderRepository interface
type MarketOrderRepository struct {
	q queryable
}

// NewMarketOrderRepository creates a new market order repository
func NewMarketOrderRepository(db *database.DB) *MarketOrderRepository {
	return &MarketOrderRepository{q: db.Pool}
}

func newMarketOrderRepositoryWithTx(tx queryable) *MarketOrderRepository {
	return &MarketOrderRepository{q: tx}
}

// Create inserts a new active order
func (r *MarketOrderRepository) Create(ctx context.Context, accountID int64, orderType models.OrderType, tokens, pricePerToken int64) (*models.MarketOrder, error) {
	query := `
		INSERT INTO market_orders (account_id, order_type, tokens, price_per_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, filled, status, created_at
	`

	order := &models.MarketOrder{
		AccountID:     accountID,
		OrderType:     orderType,
		Tokens:        tokens,
		PricePerToken: pricePerToken,
	}
	err := r.q.QueryRow(ctx, query, accountID, orderType, tokens, pricePerToken).
		Scan(&order.ID, &order.Filled, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s order for account %d: %w", orderType, accountID, err)
	}

	return order, nil
}

// GetByID retrieves an order by ID
func (r *MarketOrderRepository) GetByID(ctx context.Context, id int64) (*models.MarketOrder, error) {
	query := `
		SELECT id, account_id, order_type, tokens, price_per_token, filled, status, created_at
		FROM market_orders
		WHERE id = $1
	`

	order, err := scanMarketOrder(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return order, nil
}

func scanMarketOrder(row pgx.Row) (*models.MarketOrder, error) {
	var o models.MarketOrder
	err := row.Scan(
		&o.ID, &o.AccountID, &o.OrderType, &o.Tokens,
		&o.PricePerToken, &o.Filled, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOpenBuys returns active buy orders in matching priority: highest price
// first, oldest first within a price
func (r *MarketOrderRepository) GetOpenBuys(ctx context.Context) ([]*models.MarketOrder, error) {
	query := `
		SELECT id, account_id, order_type, tokens, price_per_token, filled, status, created_at
		FROM market_orders
		WHERE status = 'active' AND order_type = 'buy'
		ORDER BY price_per_token DESC, created_at ASC
	`

	return r.queryOrders(ctx, query)
}

// GetOpenSells returns active sell orders in matching priority: lowest price
// first, oldest first within a price
func (r *MarketOrderRepository) GetOpenSells(ctx context.Context) ([]*models.MarketOrder, error) {
	query := `
		SELECT id, account_id, order_type, tokens, price_per_token, filled, status, created_at
		FROM market_orders
		WHERE status = 'active' AND order_type = 'sell'
		ORDER BY price_per_token ASC, created_at ASC
	`

	return r.queryOrders(ctx, query)
}

// GetOpenByAccount returns an account's own resting orders
func (r *MarketOrderRepository) GetOpenByAccount(ctx context.Context, accountID int64) ([]*models.MarketOrder, error) {
	query := `
		SELECT id, account_id, order_type, tokens, price_per_token, filled, status, created_at
		FROM market_orders
		WHERE status = 'active' AND account_id = $1
		ORDER BY created_at ASC
	`

	return r.queryOrders(ctx, query, accountID)
}

func (r *MarketOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*models.MarketOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.MarketOrder
	for rows.Next() {
		order, err := scanMarketOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// AddFilled advances an order's filled counter, guarding against overfill
func (r *MarketOrderRepository) AddFilled(ctx context.Context, orderID, tokens int64) error {
	query := `
		UPDATE market_orders
		SET filled = filled + $1
		WHERE id = $2 AND status = 'active' AND filled + $1 <= tokens
	`

	result, err := r.q.Exec(ctx, query, tokens, orderID)
	if err != nil {
		return fmt.Errorf("failed to fill order %d: %w", orderID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %d cannot absorb fill of %d tokens", orderID, tokens)
	}

	return nil
}

// MarkCompleted transitions a fully filled order to completed
func (r *MarketOrderRepository) MarkCompleted(ctx context.Context, orderID int64) error {
	query := `
		UPDATE market_orders
		SET status = 'completed'
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.q.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("failed to complete order %d: %w", orderID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %d is not active", orderID)
	}

	return nil
}

// ReferencePrice returns the last traded token price
func (r *MarketOrderRepository) ReferencePrice(ctx context.Context) (int64, error) {
	var price int64
	err := r.q.QueryRow(ctx, `SELECT token_market_price FROM game_stats WHERE id = 1`).Scan(&price)
	if err != nil {
		return 0, fmt.Errorf("failed to get reference price: %w", err)
	}
	return price, nil
}

// SetReferencePrice records the latest execution price
func (r *MarketOrderRepository) SetReferencePrice(ctx context.Context, price int64) error {
	query := `UPDATE game_stats SET token_market_price = $1, updated_at = NOW() WHERE id = 1`

	if _, err := r.q.Exec(ctx, query, price); err != nil {
		return fmt.Errorf("failed to set reference price: %w", err)
	}
	return nil
}

// Stats aggregates the open book for display
func (r *MarketOrderRepository) Stats(ctx context.Context) (*models.MarketStats, error) {
	query := `
		SELECT
			(SELECT token_market_price FROM game_stats WHERE id = 1),
			COALESCE(SUM(CASE WHEN order_type = 'buy' THEN tokens - filled END), 0),
			COALESCE(SUM(CASE WHEN order_type = 'sell' THEN tokens - filled END), 0),
			COUNT(*) FILTER (WHERE order_type = 'buy'),
			COUNT(*) FILTER (WHERE order_type = 'sell')
		FROM market_orders
		WHERE status = 'active'
	`

	var stats models.MarketStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.ReferencePrice,
		&stats.OpenBuyTokens,
		&stats.OpenSellTokens,
		&stats.OpenBuyOrders,
		&stats.OpenSellOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate market stats: %w", err)
	}

	return &stats, nil
}
