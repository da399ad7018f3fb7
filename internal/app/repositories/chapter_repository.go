package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// IChapterRepository defines the interface for chapter-related database operations
type IChapterRepository interface {
	Create(ctx context.Context, chapter *models.Chapter) error
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
	ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Chapter, error)
	Update(ctx context.Context, chapter *models.Chapter) error
	Delete(ctx context.Context, id int64) error
}

// ChapterRepository handles chapter database operations
type ChapterRepository struct {
	db *pgxpool.Pool
}

// NewChapterRepository creates a new ChapterRepository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{db: db}
}

const chapterColumns = `id, story_id, group_id, number, title, content, approval, created_at, updated_at`

func scanChapter(row pgx.Row) (*models.Chapter, error) {
	chapter := &models.Chapter{}
	err := row.Scan(&chapter.ID, &chapter.StoryID, &chapter.GroupID, &chapter.Number,
		&chapter.Title, &chapter.Content, &chapter.Approval, &chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// Create inserts a new chapter
func (r *ChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO chapters (story_id, group_id, number, title, content, approval)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		chapter.StoryID, chapter.GroupID, chapter.Number, chapter.Title, chapter.Content, chapter.Approval).
		Scan(&chapter.ID, &chapter.CreatedAt, &chapter.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating chapter: %w", err)
	}

	return nil
}

// GetByID retrieves a chapter by ID
func (r *ChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	chapter, err := scanChapter(r.db.QueryRow(ctx, `
		SELECT `+chapterColumns+`
		FROM chapters
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error getting chapter: %w", err)
	}

	return chapter, nil
}

// ListByStory retrieves a story's chapters in chapter-number order
func (r *ChapterRepository) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Chapter, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+chapterColumns+`
		FROM chapters
		WHERE story_id = $1
		ORDER BY number, id
		OFFSET $2 LIMIT $3`, storyID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

// Update persists chapter fields
func (r *ChapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE chapters
		SET number = $1, title = $2, content = $3, approval = $4, updated_at = NOW()
		WHERE id = $5`,
		chapter.Number, chapter.Title, chapter.Content, chapter.Approval, chapter.ID)

	if err != nil {
		return fmt.Errorf("error updating chapter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}

// Delete removes a chapter and its comments
func (r *ChapterRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting chapter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}
	return nil
}
