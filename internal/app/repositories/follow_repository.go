package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/dberrors"
)

// IFollowRepository defines the interface for follow-related database operations
type IFollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	GetByID(ctx context.Context, id int64) (*models.Follow, error)
	ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*models.Follow, error)
	// FollowerIDs returns the ids of every account following a story.
	FollowerIDsByStory(ctx context.Context, storyID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

// FollowRepository handles follow database operations
type FollowRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

const followColumns = `id, account_id, story_id, group_id, created_at`

func scanFollow(row pgx.Row) (*models.Follow, error) {
	follow := &models.Follow{}
	err := row.Scan(&follow.ID, &follow.AccountID, &follow.StoryID, &follow.GroupID, &follow.CreatedAt)
	if err != nil {
		return nil, err
	}
	return follow, nil
}

// Create inserts a new follow; a duplicate subscription surfaces as Conflict
func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO follows (account_id, story_id, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		follow.AccountID, follow.StoryID, follow.GroupID).
		Scan(&follow.ID, &follow.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyFollowing
		}
		return fmt.Errorf("error creating follow: %w", err)
	}

	return nil
}

// GetByID retrieves a follow by ID
func (r *FollowRepository) GetByID(ctx context.Context, id int64) (*models.Follow, error) {
	follow, err := scanFollow(r.db.QueryRow(ctx, `
		SELECT `+followColumns+`
		FROM follows
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFollowNotFound
		}
		return nil, fmt.Errorf("error getting follow: %w", err)
	}

	return follow, nil
}

// ListByAccount retrieves an account's follows in creation order
func (r *FollowRepository) ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*models.Follow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+followColumns+`
		FROM follows
		WHERE account_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`, accountID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing follows: %w", err)
	}
	defer rows.Close()

	var follows []*models.Follow
	for rows.Next() {
		follow, err := scanFollow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning follow: %w", err)
		}
		follows = append(follows, follow)
	}

	return follows, rows.Err()
}

// FollowerIDsByStory returns the account ids subscribed to a story
func (r *FollowRepository) FollowerIDsByStory(ctx context.Context, storyID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT account_id FROM follows WHERE story_id = $1`, storyID)
	if err != nil {
		return nil, fmt.Errorf("error listing story followers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning follower id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Delete removes a follow
func (r *FollowRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM follows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFollowNotFound
	}
	return nil
}
