package models

import "time"

// AuctionStatus is the auction state machine: active is the only live state
// and completed is terminal.
type AuctionStatus string

const (
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusCompleted AuctionStatus = "completed"
)

// Valid reports whether the status is a known auction state
func (s AuctionStatus) Valid() bool {
	return s == AuctionStatusActive || s == AuctionStatusCompleted
}

// Auction is a time-boxed English auction over a single artifact. The current
// bid is held in escrow: the highest bidder's coins are already debited, and
// are refunded in the same transaction that accepts a higher bid.
type Auction struct {
	ID              int64         `db:"id"`
	ArtifactID      int64         `db:"artifact_id"`
	SellerID        int64         `db:"seller_id"`
	CurrentBid      int64         `db:"current_bid"`
	CurrentBidderID *int64        `db:"current_bidder_id"`
	StartingBid     int64         `db:"starting_bid"`
	EndsAt          time.Time     `db:"ends_at"`
	Status          AuctionStatus `db:"status"`
	CreatedAt       time.Time     `db:"created_at"`

	// Populated by joins for display.
	ArtifactName   string `db:"-"`
	ArtifactRarity Rarity `db:"-"`
}

// HasBidder returns true once at least one bid has been escrowed
func (a *Auction) HasBidder() bool {
	return a.CurrentBidderID != nil
}

// IsExpired reports whether the auction's end time has passed
func (a *Auction) IsExpired(now time.Time) bool {
	return !now.Before(a.EndsAt)
}

// BidResult represents the outcome of an accepted bid
type BidResult struct {
	AuctionID  int64
	Amount     int64
	NewBalance int64
}
