package repository

import (
	"context"
	"fmt"

	"vaultrush/database"
	"vaultrush/models"

	"github.com/jackc/pgx/v5"
)

// ArtifactRepository implements the ArtifactRepository interface
type ArtifactRepository struct {
	q queryable
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *database.DB) *ArtifactRepository {
	return &ArtifactRepository{q: db.Pool}
}

func newArtifactRepositoryWithTx(tx queryable) *ArtifactRepository {
	return &ArtifactRepository{q: tx}
}

// Create inserts a new artifact and returns it with its assigned ID
func (r *ArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error) {
	query := `
		INSERT INTO artifacts (owner_id, name, rarity, bonus_kind, bonus_value, description, acquired_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		artifact.OwnerID,
		artifact.Name,
		artifact.Rarity,
		artifact.BonusKind,
		artifact.BonusValue,
		artifact.Description,
		artifact.AcquiredFrom,
	).Scan(&artifact.ID, &artifact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create artifact for owner %d: %w", artifact.OwnerID, err)
	}

	return artifact, nil
}

// GetByID retrieves an artifact by ID
func (r *ArtifactRepository) GetByID(ctx context.Context, id int64) (*models.Artifact, error) {
	query := `
		SELECT id, owner_id, name, rarity, bonus_kind, bonus_value, description, acquired_from, created_at
		FROM artifacts
		WHERE id = $1
	`

	var a models.Artifact
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.OwnerID, &a.Name, &a.Rarity, &a.BonusKind,
		&a.BonusValue, &a.Description, &a.AcquiredFrom, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact %d: %w", id, err)
	}

	return &a, nil
}

// GetByOwner returns all artifacts held by an account, rarest first
func (r *ArtifactRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*models.Artifact, error) {
	query := `
		SELECT id, owner_id, name, rarity, bonus_kind, bonus_value, description, acquired_from, created_at
		FROM artifacts
		WHERE owner_id = $1
		ORDER BY CASE rarity
			WHEN 'Legendary' THEN 0
			WHEN 'Epic' THEN 1
			WHEN 'Rare' THEN 2
			ELSE 3
		END, created_at DESC
	`

	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artifacts for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	var artifacts []*models.Artifact
	for rows.Next() {
		var a models.Artifact
		err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Name, &a.Rarity, &a.BonusKind,
			&a.BonusValue, &a.Description, &a.AcquiredFrom, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artifacts: %w", err)
	}

	return artifacts, nil
}

// CountByOwner returns how many artifacts the account holds
func (r *ArtifactRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM artifacts WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count artifacts for owner %d: %w", ownerID, err)
	}
	return count, nil
}

// SumBonus totals the bonus values of one kind across an account's artifacts
func (r *ArtifactRepository) SumBonus(ctx context.Context, ownerID int64, kind models.BonusKind) (float64, error) {
	query := `
		SELECT COALESCE(SUM(bonus_value), 0)
		FROM artifacts
		WHERE owner_id = $1 AND bonus_kind = $2
	`

	var sum float64
	if err := r.q.QueryRow(ctx, query, ownerID, kind).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum %s bonus for owner %d: %w", kind, ownerID, err)
	}
	return sum, nil
}

// TransferOwner moves an artifact to a new owner, failing if the current
// owner does not match
func (r *ArtifactRepository) TransferOwner(ctx context.Context, artifactID, fromID, toID int64) error {
	query := `UPDATE artifacts SET owner_id = $1 WHERE id = $2 AND owner_id = $3`

	result, err := r.q.Exec(ctx, query, toID, artifactID, fromID)
	if err != nil {
		return fmt.Errorf("failed to transfer artifact %d: %w", artifactID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("artifact %d not owned by account %d", artifactID, fromID)
	}

	return nil
}
