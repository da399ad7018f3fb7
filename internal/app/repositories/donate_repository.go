package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranminh/mangareader/internal/app/models"
)

// IDonateRepository defines the interface for donation-related database operations
type IDonateRepository interface {
	Create(ctx context.Context, donate *models.Donate) error
	ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Donate, error)
	ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Donate, error)
}

// DonateRepository handles donation database operations
type DonateRepository struct {
	db *pgxpool.Pool
}

// NewDonateRepository creates a new DonateRepository
func NewDonateRepository(db *pgxpool.Pool) *DonateRepository {
	return &DonateRepository{db: db}
}

const donateColumns = `id, account_id, group_id, story_id, amount, message, created_at`

func scanDonate(row pgx.Row) (*models.Donate, error) {
	donate := &models.Donate{}
	err := row.Scan(&donate.ID, &donate.AccountID, &donate.GroupID, &donate.StoryID,
		&donate.Amount, &donate.Message, &donate.CreatedAt)
	if err != nil {
		return nil, err
	}
	return donate, nil
}

// Create inserts a new donation
func (r *DonateRepository) Create(ctx context.Context, donate *models.Donate) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO donates (account_id, group_id, story_id, amount, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		donate.AccountID, donate.GroupID, donate.StoryID, donate.Amount, donate.Message).
		Scan(&donate.ID, &donate.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating donate: %w", err)
	}

	return nil
}

func (r *DonateRepository) listByTarget(ctx context.Context, column string, targetID int64, offset, limit int) ([]*models.Donate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+donateColumns+`
		FROM donates
		WHERE `+column+` = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`, targetID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing donates: %w", err)
	}
	defer rows.Close()

	var donates []*models.Donate
	for rows.Next() {
		donate, err := scanDonate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning donate: %w", err)
		}
		donates = append(donates, donate)
	}

	return donates, rows.Err()
}

// ListByGroup retrieves a group's donations in creation order
func (r *DonateRepository) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Donate, error) {
	return r.listByTarget(ctx, "group_id", groupID, offset, limit)
}

// ListByStory retrieves a story's donations in creation order
func (r *DonateRepository) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Donate, error) {
	return r.listByTarget(ctx, "story_id", storyID, offset, limit)
}
