package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"vaultrush/events"
	"vaultrush/models"
)

const (
	auctionMinDuration = time.Minute
	auctionMaxDuration = 48 * time.Hour
)

type auctionService struct {
	uowFactory UnitOfWorkFactory
}

// NewAuctionService creates a new artifact auction service
func NewAuctionService(uowFactory UnitOfWorkFactory) AuctionService {
	return &auctionService{uowFactory: uowFactory}
}

func (s *auctionService) CreateAuction(ctx context.Context, sellerID, artifactID, startingBid int64, duration time.Duration) (*models.Auction, error) {
	if startingBid <= 0 {
		return nil, fmt.Errorf("starting bid must be positive")
	}
	if duration < auctionMinDuration || duration > auctionMaxDuration {
		return nil, fmt.Errorf("auction duration must be between %s and %s", auctionMinDuration, auctionMaxDuration)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	artifact, err := uow.ArtifactRepository().GetByID(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	if artifact == nil || artifact.OwnerID != sellerID {
		return nil, fmt.Errorf("you do not own that artifact")
	}

	auction, err := uow.AuctionRepository().Create(ctx, artifactID, sellerID, startingBid, time.Now().Add(duration))
	if err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}
	auction.ArtifactName = artifact.Name
	auction.ArtifactRarity = artifact.Rarity

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return auction, nil
}

// PlaceBid escrows the bid and refunds the previous highest bidder in the
// same transaction, so exactly one bid is ever held per auction.
func (s *auctionService) PlaceBid(ctx context.Context, bidderID, auctionID, amount int64) (*models.BidResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	auction, err := uow.AuctionRepository().GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, fmt.Errorf("auction not found")
	}
	if auction.Status != models.AuctionStatusActive || auction.IsExpired(time.Now()) {
		return nil, fmt.Errorf("auction has ended")
	}
	if auction.SellerID == bidderID {
		return nil, fmt.Errorf("you cannot bid on your own auction")
	}
	if amount < auction.StartingBid {
		return nil, fmt.Errorf("bid must be at least the starting bid of %d", auction.StartingBid)
	}
	if amount <= auction.CurrentBid {
		return nil, fmt.Errorf("bid must beat the current bid of %d", auction.CurrentBid)
	}

	bidder, err := uow.AccountRepository().GetByDiscordID(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if bidder == nil {
		return nil, fmt.Errorf("account not found")
	}
	if !bidder.CanAfford(amount) {
		return nil, fmt.Errorf("insufficient coins for a %d bid", amount)
	}

	if err := uow.AccountRepository().DeductCoins(ctx, bidderID, amount); err != nil {
		return nil, fmt.Errorf("failed to escrow bid: %w", err)
	}

	if auction.HasBidder() {
		prev := *auction.CurrentBidderID
		if err := uow.AccountRepository().AddCoins(ctx, prev, auction.CurrentBid); err != nil {
			return nil, fmt.Errorf("failed to refund previous bidder: %w", err)
		}
		refund := &models.LedgerEntry{
			AccountID:       prev,
			TransactionType: models.TransactionTypeAuctionRefund,
			Amount:          auction.CurrentBid,
			Metadata:        map[string]any{"auction_id": auctionID},
		}
		if err := uow.LedgerRepository().Record(ctx, refund); err != nil {
			return nil, err
		}
	}

	if err := uow.AuctionRepository().UpdateBid(ctx, auctionID, bidderID, amount); err != nil {
		return nil, fmt.Errorf("failed to record bid: %w", err)
	}

	entry := &models.LedgerEntry{
		AccountID:       bidderID,
		TransactionType: models.TransactionTypeAuctionBid,
		Amount:          -amount,
		Metadata:        map[string]any{"auction_id": auctionID},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, bidder.Coins-amount); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BidResult{
		AuctionID:  auctionID,
		Amount:     amount,
		NewBalance: bidder.Coins - amount,
	}, nil
}

func (s *auctionService) ActiveAuctions(ctx context.Context) ([]*models.Auction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.AuctionRepository().GetActive(ctx)
}

// FinalizeExpired settles every ended auction. Completion is claimed with a
// conditional update, so concurrent runs settle each auction at most once.
func (s *auctionService) FinalizeExpired(ctx context.Context) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	expired, err := uow.AuctionRepository().GetExpiredActive(ctx)
	uow.Rollback()
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, auction := range expired {
		ok, err := s.settleAuction(ctx, auction)
		if err != nil {
			logrus.WithError(err).WithField("auction_id", auction.ID).Error("Auction settlement failed")
			continue
		}
		if ok {
			settled++
		}
	}
	return settled, nil
}

func (s *auctionService) settleAuction(ctx context.Context, auction *models.Auction) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	claimed, err := uow.AuctionRepository().MarkCompleted(ctx, auction.ID)
	if err != nil {
		return false, err
	}
	if !claimed {
		// Another run got here first.
		return false, nil
	}

	if auction.HasBidder() {
		winnerID := *auction.CurrentBidderID
		if err := uow.ArtifactRepository().TransferOwner(ctx, auction.ArtifactID, auction.SellerID, winnerID); err != nil {
			return false, fmt.Errorf("failed to transfer artifact: %w", err)
		}
		if err := uow.AccountRepository().AddCoins(ctx, auction.SellerID, auction.CurrentBid); err != nil {
			return false, fmt.Errorf("failed to pay seller: %w", err)
		}

		entry := &models.LedgerEntry{
			AccountID:       auction.SellerID,
			TransactionType: models.TransactionTypeAuctionSale,
			Amount:          auction.CurrentBid,
			Metadata:        map[string]any{"auction_id": auction.ID, "winner": winnerID},
		}
		if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
			return false, err
		}
	}

	uow.EventBus().Publish(events.AuctionSettledEvent{
		AuctionID:  auction.ID,
		SellerID:   auction.SellerID,
		WinnerID:   auction.CurrentBidderID,
		FinalBid:   auction.CurrentBid,
		ArtifactID: auction.ArtifactID,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}
