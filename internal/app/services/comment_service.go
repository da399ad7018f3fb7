package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/tranminh/mangareader/internal/app/auth"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/helpers"
)

// CommentTarget names which record a comment hangs off. Exactly one of the
// fields must be set.
type CommentTarget struct {
	StoryID   *int64
	GroupID   *int64
	ChapterID *int64
}

func (t CommentTarget) validate() error {
	count := 0
	if t.StoryID != nil {
		count++
	}
	if t.GroupID != nil {
		count++
	}
	if t.ChapterID != nil {
		count++
	}
	if count != 1 {
		return fmt.Errorf("%w: comment must target exactly one of story, group or chapter", apperrors.ErrValidationFailed)
	}
	return nil
}

// CommentService manages comments on stories, groups and chapters
type CommentService struct {
	commentRepo repositories.ICommentRepository
	storyRepo   repositories.IStoryRepository
	groupRepo   repositories.IGroupRepository
	chapterRepo repositories.IChapterRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.ICommentRepository,
	storyRepo repositories.IStoryRepository,
	groupRepo repositories.IGroupRepository,
	chapterRepo repositories.IChapterRepository,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		storyRepo:   storyRepo,
		groupRepo:   groupRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// Create posts a comment on the given target
func (s *CommentService) Create(ctx context.Context, actor *models.Account, target CommentTarget, content string) (*models.Comment, error) {
	if actor == nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := target.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content cannot be empty", apperrors.ErrValidationFailed)
	}

	// The target row must exist; a dangling comment is useless
	switch {
	case target.StoryID != nil:
		if _, err := s.storyRepo.GetByID(ctx, *target.StoryID); err != nil {
			return nil, err
		}
	case target.GroupID != nil:
		if _, err := s.groupRepo.GetByID(ctx, *target.GroupID); err != nil {
			return nil, err
		}
	case target.ChapterID != nil:
		if _, err := s.chapterRepo.GetByID(ctx, *target.ChapterID); err != nil {
			return nil, err
		}
	}

	comment := &models.Comment{
		AccountID: &actor.ID,
		StoryID:   target.StoryID,
		GroupID:   target.GroupID,
		ChapterID: target.ChapterID,
		Content:   content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("commentID", comment.ID).
		Int64("accountID", actor.ID).
		Msg("Comment created")

	return comment, nil
}

// ListByStory returns a page of a story's comments
func (s *CommentService) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Comment, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.commentRepo.ListByStory(ctx, storyID, offset, limit)
}

// ListByGroup returns a page of a group's comments
func (s *CommentService) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Comment, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.commentRepo.ListByGroup(ctx, groupID, offset, limit)
}

// ListByChapter returns a page of a chapter's comments
func (s *CommentService) ListByChapter(ctx context.Context, chapterID int64, offset, limit int) ([]*models.Comment, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.commentRepo.ListByChapter(ctx, chapterID, offset, limit)
}

// Delete removes a comment. Author or admin; comments whose author was
// deleted belong to admins.
func (s *CommentService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanActOnOwned(actor, comment.AccountID) {
		return apperrors.ErrPermissionDenied
	}

	return s.commentRepo.Delete(ctx, id)
}
