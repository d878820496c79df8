package models

// TransactionType classifies a ledger entry. The conservation property of the
// economy hangs off this taxonomy: mints create currency, sinks destroy it,
// transfers move it between accounts without changing the total.
type TransactionType string

const (
	// Vault
	TransactionTypeCollection TransactionType = "collection"
	TransactionTypeUpgrade    TransactionType = "upgrade"

	// Games against the house
	TransactionTypeGameWin  TransactionType = "game_win"
	TransactionTypeGameLoss TransactionType = "game_loss"
	TransactionTypeGamePush TransactionType = "game_push"

	// Fixed rewards
	TransactionTypeDailyReward  TransactionType = "daily_reward"
	TransactionTypeTriviaReward TransactionType = "trivia_reward"
	TransactionTypeCrateOpen    TransactionType = "crate_open"
	TransactionTypeLotteryPlay  TransactionType = "lottery_play"

	// Raids
	TransactionTypeRaidSuccess TransactionType = "raid_success"
	TransactionTypeRaidFailed  TransactionType = "raid_failed"
	TransactionTypeRaidLooted  TransactionType = "raid_looted"

	// Markets
	TransactionTypeOrderEscrow TransactionType = "order_escrow"
	TransactionTypeOrderFill   TransactionType = "order_fill"
	TransactionTypeShareBuy    TransactionType = "share_buy"
	TransactionTypeShareSell   TransactionType = "share_sell"
	TransactionTypeDividend    TransactionType = "dividend"

	// Auctions
	TransactionTypeAuctionBid    TransactionType = "auction_bid"
	TransactionTypeAuctionRefund TransactionType = "auction_refund"
	TransactionTypeAuctionSale   TransactionType = "auction_sale"

	// Loans
	TransactionTypeLoanFunded    TransactionType = "loan_funded"
	TransactionTypeLoanReceived  TransactionType = "loan_received"
	TransactionTypeLoanPayment   TransactionType = "loan_payment"
	TransactionTypeLoanCollected TransactionType = "loan_collected"
	TransactionTypeLoanCancelled TransactionType = "loan_cancelled"

	// Alliances
	TransactionTypeContribution TransactionType = "alliance_contribution"
)

// IsMint returns true if the transaction type creates currency out of nothing
func (tt TransactionType) IsMint() bool {
	switch tt {
	case TransactionTypeCollection, TransactionTypeGameWin,
		TransactionTypeDailyReward, TransactionTypeTriviaReward,
		TransactionTypeDividend:
		return true
	}
	return false
}

// IsSink returns true if the transaction type destroys currency
func (tt TransactionType) IsSink() bool {
	switch tt {
	case TransactionTypeUpgrade, TransactionTypeGameLoss, TransactionTypeRaidFailed:
		return true
	}
	return false
}

// IsTransfer returns true if the transaction type moves currency between accounts
func (tt TransactionType) IsTransfer() bool {
	switch tt {
	case TransactionTypeRaidLooted, TransactionTypeOrderFill,
		TransactionTypeShareBuy, TransactionTypeShareSell,
		TransactionTypeAuctionBid, TransactionTypeAuctionRefund, TransactionTypeAuctionSale,
		TransactionTypeLoanFunded, TransactionTypeLoanReceived,
		TransactionTypeLoanPayment, TransactionTypeLoanCollected, TransactionTypeLoanCancelled,
		TransactionTypeContribution:
		return true
	}
	return false
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
