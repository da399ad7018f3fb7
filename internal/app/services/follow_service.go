package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/helpers"
)

// FollowTarget names what is being followed. Exactly one field must be set.
type FollowTarget struct {
	StoryID *int64
	GroupID *int64
}

func (t FollowTarget) validate() error {
	if (t.StoryID == nil) == (t.GroupID == nil) {
		return fmt.Errorf("%w: follow must target exactly one of story or group", apperrors.ErrValidationFailed)
	}
	return nil
}

// FollowService manages story and group subscriptions
type FollowService struct {
	followRepo repositories.IFollowRepository
	storyRepo  repositories.IStoryRepository
	groupRepo  repositories.IGroupRepository
	logger     zerolog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo repositories.IFollowRepository, storyRepo repositories.IStoryRepository, groupRepo repositories.IGroupRepository, logger zerolog.Logger) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		storyRepo:  storyRepo,
		groupRepo:  groupRepo,
		logger:     logger,
	}
}

// Create subscribes the actor to a story or group. Following the same target
// twice is a conflict.
func (s *FollowService) Create(ctx context.Context, actor *models.Account, target FollowTarget) (*models.Follow, error) {
	if actor == nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := target.validate(); err != nil {
		return nil, err
	}

	if target.StoryID != nil {
		if _, err := s.storyRepo.GetByID(ctx, *target.StoryID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.groupRepo.GetByID(ctx, *target.GroupID); err != nil {
			return nil, err
		}
	}

	follow := &models.Follow{
		AccountID: actor.ID,
		StoryID:   target.StoryID,
		GroupID:   target.GroupID,
	}

	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}

	return follow, nil
}

// ListByAccount returns a page of an account's follows. Owner or admin.
func (s *FollowService) ListByAccount(ctx context.Context, actor *models.Account, accountID int64, offset, limit int) ([]*models.Follow, error) {
	if actor == nil || (actor.ID != accountID && !actor.IsAdmin()) {
		return nil, apperrors.ErrPermissionDenied
	}
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.followRepo.ListByAccount(ctx, accountID, offset, limit)
}

// Delete unsubscribes. Owner or admin.
func (s *FollowService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	follow, err := s.followRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor == nil || (actor.ID != follow.AccountID && !actor.IsAdmin()) {
		return apperrors.ErrPermissionDenied
	}

	return s.followRepo.Delete(ctx, id)
}
