package models

import "time"

// OrderType distinguishes the two sides of the token order book.
type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// Valid reports whether the order type is a known side
func (t OrderType) Valid() bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

// OrderStatus is the order lifecycle: active until fully filled, then completed.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
)

// MarketOrder is a limit order for vault tokens. A buy order escrows
// tokens*price coins at creation; a sell order escrows the tokens.
type MarketOrder struct {
	ID            int64       `db:"id"`
	AccountID     int64       `db:"account_id"`
	OrderType     OrderType   `db:"order_type"`
	Tokens        int64       `db:"tokens"`
	PricePerToken int64       `db:"price_per_token"`
	Filled        int64       `db:"filled"`
	Status        OrderStatus `db:"status"`
	CreatedAt     time.Time   `db:"created_at"`
}

// Remaining returns the unfilled quantity
func (o *MarketOrder) Remaining() int64 {
	return o.Tokens - o.Filled
}

// OrderResult represents the outcome of placing a market order
type OrderResult struct {
	Order          *MarketOrder
	MatchedTokens  int64
	ReferencePrice int64
}

// MarketStats is the order book overview shown to users
type MarketStats struct {
	ReferencePrice int64
	OpenBuyTokens  int64
	OpenSellTokens int64
	OpenBuyOrders  int64
	OpenSellOrders int64
}
