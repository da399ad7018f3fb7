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

// IStoryRepository defines the interface for story-related database operations
type IStoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id int64) (*models.Story, error)
	List(ctx context.Context, offset, limit int) ([]*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id int64) error

	// Translation ownership
	AssignGroup(ctx context.Context, storyID, groupID int64) error
	UnassignGroup(ctx context.Context, storyID, groupID int64) error
	GroupAssigned(ctx context.Context, storyID, groupID int64) (bool, error)
}

// StoryRepository handles story database operations
type StoryRepository struct {
	db *pgxpool.Pool
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{db: db}
}

const storyColumns = `id, title, description, tags, author, creator_id, approval, created_at, updated_at`

func scanStory(row pgx.Row) (*models.Story, error) {
	story := &models.Story{}
	err := row.Scan(&story.ID, &story.Title, &story.Description, &story.Tags,
		&story.Author, &story.CreatorID, &story.Approval, &story.CreatedAt, &story.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return story, nil
}

// Create inserts a new story
func (r *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO stories (title, description, tags, author, creator_id, approval)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		story.Title, story.Description, story.Tags, story.Author, story.CreatorID, story.Approval).
		Scan(&story.ID, &story.CreatedAt, &story.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating story: %w", err)
	}

	return nil
}

// GetByID retrieves a story by ID
func (r *StoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	story, err := scanStory(r.db.QueryRow(ctx, `
		SELECT `+storyColumns+`
		FROM stories
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStoryNotFound
		}
		return nil, fmt.Errorf("error getting story: %w", err)
	}

	return story, nil
}

// List retrieves stories in creation order with offset/limit pagination
func (r *StoryRepository) List(ctx context.Context, offset, limit int) ([]*models.Story, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+storyColumns+`
		FROM stories
		ORDER BY id
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing stories: %w", err)
	}
	defer rows.Close()

	var stories []*models.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning story: %w", err)
		}
		stories = append(stories, story)
	}

	return stories, rows.Err()
}

// Update persists story fields
func (r *StoryRepository) Update(ctx context.Context, story *models.Story) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE stories
		SET title = $1, description = $2, tags = $3, author = $4, approval = $5, updated_at = NOW()
		WHERE id = $6`,
		story.Title, story.Description, story.Tags, story.Author, story.Approval, story.ID)

	if err != nil {
		return fmt.Errorf("error updating story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStoryNotFound
	}

	return nil
}

// Delete removes a story; chapters, comments, follows, donates and group
// associations owned by it go with it via foreign keys.
func (r *StoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStoryNotFound
	}
	return nil
}

// AssignGroup records a translation-ownership association
func (r *StoryRepository) AssignGroup(ctx context.Context, storyID, groupID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO story_groups (story_id, group_id)
		VALUES ($1, $2)`, storyID, groupID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error assigning group to story: %w", err)
	}

	return nil
}

// UnassignGroup removes a translation-ownership association
func (r *StoryRepository) UnassignGroup(ctx context.Context, storyID, groupID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM story_groups
		WHERE story_id = $1 AND group_id = $2`, storyID, groupID)
	if err != nil {
		return fmt.Errorf("error unassigning group from story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GroupAssigned checks whether a group holds translation ownership of a story
func (r *StoryRepository) GroupAssigned(ctx context.Context, storyID, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM story_groups WHERE story_id = $1 AND group_id = $2)`,
		storyID, groupID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking story group assignment: %w", err)
	}

	return exists, nil
}
