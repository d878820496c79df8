package models

// EconomyStats is the aggregate snapshot served by the status endpoint.
type EconomyStats struct {
	Accounts       int64 `json:"accounts"`
	TotalCoins     int64 `json:"total_coins"`
	TotalTokens    int64 `json:"total_tokens"`
	TokenPrice     int64 `json:"token_price"`
	ListedStocks   int   `json:"listed_stocks"`
	ActiveAuctions int   `json:"active_auctions"`
	ActiveEvents   int   `json:"active_events"`
}
