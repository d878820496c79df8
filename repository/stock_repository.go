package repository

import (
	"context"
	"fmt"
	"time"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

const stockColumns = `
	s.id, s.owner_id, s.symbol, s.company_name, s.total_shares, s.shares_available,
	s.current_price, s.dividend_rate, s.price_change_24h, s.performance_score,
	s.last_dividend_payout, s.created_at, s.updated_at`

// StockRepository implements the StockRepository interface
type StockRepository struct {
	q queryable
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *database.DB) *StockRepository {
	return &StockRepository{q: db.Pool}
}

func newStockRepositoryWithTx(tx queryable) *StockRepository {
	return &StockRepository{q: tx}
}

func scanStock(row pgx.Row) (*models.Stock, error) {
	var s models.Stock
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Symbol, &s.CompanyName, &s.TotalShares, &s.SharesAvailable,
		&s.CurrentPrice, &s.DividendRate, &s.PriceChange24h, &s.PerformanceScore,
		&s.LastDividendPayout, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create lists a new stock for a vault owner
func (r *StockRepository) Create(ctx context.Context, stock *models.Stock) (*models.Stock, error) {
	query := `
		INSERT INTO vault_stocks (owner_id, symbol, company_name, total_shares, shares_available, current_price, dividend_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, price_change_24h, performance_score, last_dividend_payout, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		stock.OwnerID,
		stock.Symbol,
		stock.CompanyName,
		stock.TotalShares,
		stock.SharesAvailable,
		stock.CurrentPrice,
		stock.DividendRate,
	).Scan(
		&stock.ID, &stock.PriceChange24h, &stock.PerformanceScore,
		&stock.LastDividendPayout, &stock.CreatedAt, &stock.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock %s: %w", stock.Symbol, err)
	}

	return stock, nil
}

// GetBySymbol retrieves a stock by its ticker symbol
func (r *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM vault_stocks s WHERE s.symbol = $1`

	stock, err := scanStock(r.q.QueryRow(ctx, query, symbol))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %s: %w", symbol, err)
	}

	return stock, nil
}

// GetByOwner retrieves the stock listed by an account, if any
func (r *StockRepository) GetByOwner(ctx context.Context, ownerID int64) (*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM vault_stocks s WHERE s.owner_id = $1`

	stock, err := scanStock(r.q.QueryRow(ctx, query, ownerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock for owner %d: %w", ownerID, err)
	}

	return stock, nil
}

// GetAll returns every listed stock joined with owner vault data, used for
// market display and the repricing job
func (r *StockRepository) GetAll(ctx context.Context) ([]*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `, a.username, a.coins_per_hour, a.vault_level
		FROM vault_stocks s
		JOIN accounts a ON a.discord_id = s.owner_id
		ORDER BY s.current_price DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		var s models.Stock
		err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Symbol, &s.CompanyName, &s.TotalShares, &s.SharesAvailable,
			&s.CurrentPrice, &s.DividendRate, &s.PriceChange24h, &s.PerformanceScore,
			&s.LastDividendPayout, &s.CreatedAt, &s.UpdatedAt,
			&s.OwnerName, &s.OwnerRate, &s.OwnerLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stocks: %w", err)
	}

	return stocks, nil
}

// SetPrice overwrites the market price and records its daily change and
// performance score, used by the repricing job
func (r *StockRepository) SetPrice(ctx context.Context, stockID, price int64, change24h, performance float64) error {
	query := `
		UPDATE vault_stocks
		SET current_price = $1, price_change_24h = $2, performance_score = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.q.Exec(ctx, query, price, change24h, performance, stockID)
	if err != nil {
		return fmt.Errorf("failed to set price for stock %d: %w", stockID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("stock %d not found", stockID)
	}

	return nil
}

// UpdatePrice applies a trade's price impact, clamped at the floor
func (r *StockRepository) UpdatePrice(ctx context.Context, stockID, newPrice int64) error {
	query := `
		UPDATE vault_stocks
		SET current_price = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, newPrice, stockID)
	if err != nil {
		return fmt.Errorf("failed to update price for stock %d: %w", stockID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("stock %d not found", stockID)
	}

	return nil
}

// AdjustAvailableShares moves shares between the float and holders. A
// negative delta fails if it would take availability below zero.
func (r *StockRepository) AdjustAvailableShares(ctx context.Context, stockID, delta int64) error {
	query := `
		UPDATE vault_stocks
		SET shares_available = shares_available + $1, updated_at = NOW()
		WHERE id = $2 AND shares_available + $1 >= 0 AND shares_available + $1 <= total_shares
	`

	result, err := r.q.Exec(ctx, query, delta, stockID)
	if err != nil {
		return fmt.Errorf("failed to adjust shares for stock %d: %w", stockID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("stock %d cannot absorb share adjustment of %d", stockID, delta)
	}

	return nil
}

// GetHolding retrieves a single position
func (r *StockRepository) GetHolding(ctx context.Context, stockID, holderID int64) (*models.StockHolding, error) {
	query := `
		SELECT id, stock_id, holder_id, shares_owned, average_buy_price,
		       total_invested, total_dividends_earned, updated_at
		FROM stock_holdings
		WHERE stock_id = $1 AND holder_id = $2
	`

	var h models.StockHolding
	err := r.q.QueryRow(ctx, query, stockID, holderID).Scan(
		&h.ID, &h.StockID, &h.HolderID, &h.SharesOwned, &h.AverageBuyPrice,
		&h.TotalInvested, &h.TotalDividendsEarned, &h.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding for stock %d holder %d: %w", stockID, holderID, err)
	}

	return &h, nil
}

// CreateHolding opens a new position
func (r *StockRepository) CreateHolding(ctx context.Context, stockID, holderID, shares, pricePerShare int64) error {
	query := `
		INSERT INTO stock_holdings (stock_id, holder_id, shares_owned, average_buy_price, total_invested)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.Exec(ctx, query, stockID, holderID, shares, pricePerShare, shares*pricePerShare)
	if err != nil {
		return fmt.Errorf("failed to create holding for stock %d holder %d: %w", stockID, holderID, err)
	}
	return nil
}

// AddToHolding grows a position and reaverages its buy price
func (r *StockRepository) AddToHolding(ctx context.Context, holdingID, shares, totalCost int64) error {
	query := `
		UPDATE stock_holdings
		SET shares_owned = shares_owned + $1,
		    total_invested = total_invested + $2,
		    average_buy_price = (average_buy_price * shares_owned + $2) / (shares_owned + $1),
		    updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, shares, totalCost, holdingID)
	if err != nil {
		return fmt.Errorf("failed to grow holding %d: %w", holdingID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("holding %d not found", holdingID)
	}

	return nil
}

// ReduceHolding shrinks a position, failing if it holds fewer shares
func (r *StockRepository) ReduceHolding(ctx context.Context, holdingID, shares int64) error {
	query := `
		UPDATE stock_holdings
		SET shares_owned = shares_owned - $1, updated_at = NOW()
		WHERE id = $2 AND shares_owned > $1
	`

	result, err := r.q.Exec(ctx, query, shares, holdingID)
	if err != nil {
		return fmt.Errorf("failed to reduce holding %d: %w", holdingID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("holding %d cannot release %d shares", holdingID, shares)
	}

	return nil
}

// DeleteHolding removes a fully sold position
func (r *StockRepository) DeleteHolding(ctx context.Context, holdingID int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM stock_holdings WHERE id = $1`, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding %d: %w", holdingID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("holding %d not found", holdingID)
	}

	return nil
}

// GetHoldingsByHolder returns a holder's positions joined with market prices
func (r *StockRepository) GetHoldingsByHolder(ctx context.Context, holderID int64) ([]*models.StockHolding, error) {
	query := `
		SELECT h.id, h.stock_id, h.holder_id, h.shares_owned, h.average_buy_price,
		       h.total_invested, h.total_dividends_earned, h.updated_at,
		       s.symbol, s.current_price
		FROM stock_holdings h
		JOIN vault_stocks s ON s.id = h.stock_id
		WHERE h.holder_id = $1
		ORDER BY s.symbol
	`

	rows, err := r.q.Query(ctx, query, holderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings for holder %d: %w", holderID, err)
	}
	defer rows.Close()

	var holdings []*models.StockHolding
	for rows.Next() {
		var h models.StockHolding
		err := rows.Scan(
			&h.ID, &h.StockID, &h.HolderID, &h.SharesOwned, &h.AverageBuyPrice,
			&h.TotalInvested, &h.TotalDividendsEarned, &h.UpdatedAt,
			&h.Symbol, &h.CurrentPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// GetHoldersByStock returns all positions in one stock, used by dividends
func (r *StockRepository) GetHoldersByStock(ctx context.Context, stockID int64) ([]*models.StockHolding, error) {
	query := `
		SELECT id, stock_id, holder_id, shares_owned, average_buy_price,
		       total_invested, total_dividends_earned, updated_at
		FROM stock_holdings
		WHERE stock_id = $1
	`

	rows, err := r.q.Query(ctx, query, stockID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holders for stock %d: %w", stockID, err)
	}
	defer rows.Close()

	var holdings []*models.StockHolding
	for rows.Next() {
		var h models.StockHolding
		err := rows.Scan(
			&h.ID, &h.StockID, &h.HolderID, &h.SharesOwned, &h.AverageBuyPrice,
			&h.TotalInvested, &h.TotalDividendsEarned, &h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// AddDividendsEarned accumulates a holding's lifetime dividend counter
func (r *StockRepository) AddDividendsEarned(ctx context.Context, holdingID, amount int64) error {
	query := `
		UPDATE stock_holdings
		SET total_dividends_earned = total_dividends_earned + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := r.q.Exec(ctx, query, amount, holdingID); err != nil {
		return fmt.Errorf("failed to add dividends to holding %d: %w", holdingID, err)
	}
	return nil
}

// RecordTrade appends to the trade log
func (r *StockRepository) RecordTrade(ctx context.Context, trade *models.StockTrade) error {
	query := `
		INSERT INTO stock_trades (stock_id, account_id, trade_type, shares, price_per_share, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.Exec(ctx, query,
		trade.StockID, trade.AccountID, trade.TradeType,
		trade.Shares, trade.PricePerShare, trade.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to record trade for stock %d: %w", trade.StockID, err)
	}
	return nil
}

// RecordDividend appends to the dividend log
func (r *StockRepository) RecordDividend(ctx context.Context, stockID, holderID, amount, sharesHeld int64) error {
	query := `
		INSERT INTO stock_dividends (stock_id, holder_id, amount, shares_held)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.q.Exec(ctx, query, stockID, holderID, amount, sharesHeld); err != nil {
		return fmt.Errorf("failed to record dividend for stock %d: %w", stockID, err)
	}
	return nil
}

// GetDividendDue returns stocks whose last payout is older than the cutoff
func (r *StockRepository) GetDividendDue(ctx context.Context, cutoff time.Time) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM vault_stocks s WHERE s.last_dividend_payout <= $1`

	rows, err := r.q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend-due stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stocks: %w", err)
	}

	return stocks, nil
}

// SetDividendPaid advances the dividend cursor after a payout run
func (r *StockRepository) SetDividendPaid(ctx context.Context, stockID int64) error {
	query := `UPDATE vault_stocks SET last_dividend_payout = NOW(), updated_at = NOW() WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, stockID); err != nil {
		return fmt.Errorf("failed to mark dividend paid for stock %d: %w", stockID, err)
	}
	return nil
}
