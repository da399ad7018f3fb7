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

// ICommentRepository defines the interface for comment-related database operations
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Comment, error)
	ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Comment, error)
	ListByChapter(ctx context.Context, chapterID int64, offset, limit int) ([]*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, account_id, story_id, group_id, chapter_id, content, created_at, updated_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	comment := &models.Comment{}
	err := row.Scan(&comment.ID, &comment.AccountID, &comment.StoryID, &comment.GroupID,
		&comment.ChapterID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (account_id, story_id, group_id, chapter_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		comment.AccountID, comment.StoryID, comment.GroupID, comment.ChapterID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error getting comment: %w", err)
	}

	return comment, nil
}

func (r *CommentRepository) listByTarget(ctx context.Context, column string, targetID int64, offset, limit int) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE `+column+` = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`, targetID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// ListByStory retrieves a story's comments in creation order
func (r *CommentRepository) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Comment, error) {
	return r.listByTarget(ctx, "story_id", storyID, offset, limit)
}

// ListByGroup retrieves a group's comments in creation order
func (r *CommentRepository) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Comment, error) {
	return r.listByTarget(ctx, "group_id", groupID, offset, limit)
}

// ListByChapter retrieves a chapter's comments in creation order
func (r *CommentRepository) ListByChapter(ctx context.Context, chapterID int64, offset, limit int) ([]*models.Comment, error) {
	return r.listByTarget(ctx, "chapter_id", chapterID, offset, limit)
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
