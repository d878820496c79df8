package repository

import (
	"context"
	"fmt"
	"time"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

// AuctionRepository implements the AuctionRepository interface
type AuctionRepository struct {
	q queryable
}

// NewAuctionRepository creates a new auction repository
func NewAuctionRepository(db *database.DB) *AuctionRepository {
	return &AuctionRepository{q: db.Pool}
}

func newAuctionRepositoryWithTx(tx queryable) *AuctionRepository {
	return &AuctionRepository{q: tx}
}

// Create inserts a new active auction
func (r *AuctionRepository) Create(ctx context.Context, artifactID, sellerID, startingBid int64, endsAt time.Time) (*models.Auction, error) {
	query := `
		INSERT INTO auctions (artifact_id, seller_id, starting_bid, current_bid, ends_at)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id, status, created_at
	`

	auction := &models.Auction{
		ArtifactID:  artifactID,
		SellerID:    sellerID,
		StartingBid: startingBid,
		EndsAt:      endsAt,
	}
	err := r.q.QueryRow(ctx, query, artifactID, sellerID, startingBid, endsAt).
		Scan(&auction.ID, &auction.Status, &auction.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create auction for artifact %d: %w", artifactID, err)
	}

	return auction, nil
}

// GetByID retrieves an auction by ID
func (r *AuctionRepository) GetByID(ctx context.Context, id int64) (*models.Auction, error) {
	query := `
		SELECT a.id, a.artifact_id, a.seller_id, a.current_bid, a.current_bidder_id,
		       a.starting_bid, a.ends_at, a.status, a.created_at,
		       ar.name, ar.rarity
		FROM auctions a
		JOIN artifacts ar ON ar.id = a.artifact_id
		WHERE a.id = $1
	`

	auction, err := scanAuction(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction %d: %w", id, err)
	}

	return auction, nil
}

func scanAuction(row pgx.Row) (*models.Auction, error) {
	var a models.Auction
	err := row.Scan(
		&a.ID, &a.ArtifactID, &a.SellerID, &a.CurrentBid, &a.CurrentBidderID,
		&a.StartingBid, &a.EndsAt, &a.Status, &a.CreatedAt,
		&a.ArtifactName, &a.ArtifactRarity,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetActive returns all running auctions, soonest ending first
func (r *AuctionRepository) GetActive(ctx context.Context) ([]*models.Auction, error) {
	query := `
		SELECT a.id, a.artifact_id, a.seller_id, a.current_bid, a.current_bidder_id,
		       a.starting_bid, a.ends_at, a.status, a.created_at,
		       ar.name, ar.rarity
		FROM auctions a
		JOIN artifacts ar ON ar.id = a.artifact_id
		WHERE a.status = 'active'
		ORDER BY a.ends_at ASC
	`

	return r.queryAuctions(ctx, query)
}

// GetExpiredActive returns active auctions whose end time has passed
func (r *AuctionRepository) GetExpiredActive(ctx context.Context) ([]*models.Auction, error) {
	query := `
		SELECT a.id, a.artifact_id, a.seller_id, a.current_bid, a.current_bidder_id,
		       a.starting_bid, a.ends_at, a.status, a.created_at,
		       ar.name, ar.rarity
		FROM auctions a
		JOIN artifacts ar ON ar.id = a.artifact_id
		WHERE a.status = 'active' AND a.ends_at <= NOW()
		ORDER BY a.ends_at ASC
	`

	return r.queryAuctions(ctx, query)
}

func (r *AuctionRepository) queryAuctions(ctx context.Context, query string, args ...any) ([]*models.Auction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query auctions: %w", err)
	}
	defer rows.Close()

	var auctions []*models.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, auction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auctions: %w", err)
	}

	return auctions, nil
}

// UpdateBid records a new highest bid, failing if the auction is no longer
// active or the bid does not beat the stored one
func (r *AuctionRepository) UpdateBid(ctx context.Context, auctionID, bidderID, amount int64) error {
	query := `
		UPDATE auctions
		SET current_bid = $1, current_bidder_id = $2
		WHERE id = $3 AND status = 'active' AND current_bid < $1
	`

	result, err := r.q.Exec(ctx, query, amount, bidderID, auctionID)
	if err != nil {
		return fmt.Errorf("failed to update bid on auction %d: %w", auctionID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auction %d rejected bid of %d", auctionID, amount)
	}

	return nil
}

// MarkCompleted transitions an expired active auction to completed. Returns
// false without error if another settlement got there first.
func (r *AuctionRepository) MarkCompleted(ctx context.Context, auctionID int64) (bool, error) {
	query := `
		UPDATE auctions
		SET status = 'completed'
		WHERE id = $1 AND status = 'active' AND ends_at <= NOW()
	`

	result, err := r.q.Exec(ctx, query, auctionID)
	if err != nil {
		return false, fmt.Errorf("failed to complete auction %d: %w", auctionID, err)
	}

	return result.RowsAffected() > 0, nil
}
