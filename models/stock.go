package models

import "time"

// Stock is a tradable claim on one vault's performance. The vault owner is
// the counterparty of every trade: buys route coins to the owner, sells are
// bought back by the owner at 95% of market value.
type Stock struct {
	ID                 int64     `db:"id"`
	OwnerID            int64     `db:"owner_id"`
	Symbol             string    `db:"symbol"`
	CompanyName        string    `db:"company_name"`
	TotalShares        int64     `db:"total_shares"`
	SharesAvailable    int64     `db:"shares_available"`
	CurrentPrice       int64     `db:"current_price"`
	DividendRate       float64   `db:"dividend_rate"`
	PriceChange24h     float64   `db:"price_change_24h"`
	PerformanceScore   float64   `db:"performance_score"`
	LastDividendPayout time.Time `db:"last_dividend_payout"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`

	// Populated by joins against the owner's account.
	OwnerName  string  `db:"-"`
	OwnerRate  float64 `db:"-"`
	OwnerLevel int     `db:"-"`
}

// SharesSold returns how many shares are in holders' hands
func (s *Stock) SharesSold() int64 {
	return s.TotalShares - s.SharesAvailable
}

// StockHolding is one holder's position in one stock. The row is deleted when
// shares_owned reaches zero.
type StockHolding struct {
	ID                   int64     `db:"id"`
	StockID              int64     `db:"stock_id"`
	HolderID             int64     `db:"holder_id"`
	SharesOwned          int64     `db:"shares_owned"`
	AverageBuyPrice      int64     `db:"average_buy_price"`
	TotalInvested        int64     `db:"total_invested"`
	TotalDividendsEarned int64     `db:"total_dividends_earned"`
	UpdatedAt            time.Time `db:"updated_at"`

	// Populated by joins for portfolio display.
	Symbol       string `db:"-"`
	CurrentPrice int64  `db:"-"`
}

// CurrentValue returns the position's value at the joined market price
func (h *StockHolding) CurrentValue() int64 {
	return h.SharesOwned * h.CurrentPrice
}

// TradeType distinguishes buys from sells in the trade log.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// StockTrade is one executed share trade, kept for history display.
type StockTrade struct {
	ID            int64     `db:"id"`
	StockID       int64     `db:"stock_id"`
	AccountID     int64     `db:"account_id"`
	TradeType     TradeType `db:"trade_type"`
	Shares        int64     `db:"shares"`
	PricePerShare int64     `db:"price_per_share"`
	TotalAmount   int64     `db:"total_amount"`
	CreatedAt     time.Time `db:"created_at"`
}

// StockDividend is one dividend payment to one holder.
type StockDividend struct {
	ID         int64     `db:"id"`
	StockID    int64     `db:"stock_id"`
	HolderID   int64     `db:"holder_id"`
	Amount     int64     `db:"amount"`
	SharesHeld int64     `db:"shares_held"`
	CreatedAt  time.Time `db:"created_at"`
}

// ShareTradeResult represents the outcome of a share buy or sell
type ShareTradeResult struct {
	Symbol        string
	Shares        int64
	PricePerShare int64
	TotalAmount   int64
	Profit        int64
	NewBalance    int64
}

// Portfolio summarizes a holder's positions across all stocks
type Portfolio struct {
	Holdings        []*StockHolding
	TotalInvested   int64
	TotalValue      int64
	TotalDividends  int64
	TotalProfitLoss int64
}
