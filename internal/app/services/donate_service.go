package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/helpers"
)

// DonateTarget names the recipient of a donation. Exactly one field must be
// set.
type DonateTarget struct {
	GroupID *int64
	StoryID *int64
}

func (t DonateTarget) validate() error {
	if (t.GroupID == nil) == (t.StoryID == nil) {
		return fmt.Errorf("%w: donate must target exactly one of group or story", apperrors.ErrValidationFailed)
	}
	return nil
}

// DonateService records donations and notifies recipients
type DonateService struct {
	donateRepo       repositories.IDonateRepository
	accountRepo      repositories.IAccountRepository
	groupRepo        repositories.IGroupRepository
	storyRepo        repositories.IStoryRepository
	notificationRepo repositories.INotificationRepository
	logger           zerolog.Logger
}

// NewDonateService creates a new DonateService
func NewDonateService(
	donateRepo repositories.IDonateRepository,
	accountRepo repositories.IAccountRepository,
	groupRepo repositories.IGroupRepository,
	storyRepo repositories.IStoryRepository,
	notificationRepo repositories.INotificationRepository,
	logger zerolog.Logger,
) *DonateService {
	return &DonateService{
		donateRepo:       donateRepo,
		accountRepo:      accountRepo,
		groupRepo:        groupRepo,
		storyRepo:        storyRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create records a donation from the actor to a group or story. The amount
// must not be negative; a group donation notifies the group's leader.
func (s *DonateService) Create(ctx context.Context, actor *models.Account, target DonateTarget, amount decimal.Decimal, message *string) (*models.Donate, error) {
	if actor == nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := target.validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}

	if target.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *target.GroupID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.storyRepo.GetByID(ctx, *target.StoryID); err != nil {
			return nil, err
		}
	}

	donate := &models.Donate{
		AccountID: &actor.ID,
		GroupID:   target.GroupID,
		StoryID:   target.StoryID,
		Amount:    amount,
		Message:   message,
	}

	if err := s.donateRepo.Create(ctx, donate); err != nil {
		return nil, err
	}

	if target.GroupID != nil {
		s.notifyGroupLeader(ctx, actor, donate)
	}

	s.logger.Info().
		Int64("donateID", donate.ID).
		Int64("accountID", actor.ID).
		Str("amount", amount.String()).
		Msg("Donation recorded")

	return donate, nil
}

// notifyGroupLeader tells the group's leader about a donation. Groups without
// a leader get nothing; failures are logged, the donation already stands.
func (s *DonateService) notifyGroupLeader(ctx context.Context, donor *models.Account, donate *models.Donate) {
	leader, err := s.accountRepo.GetGroupLeader(ctx, *donate.GroupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			s.logger.Error().Err(err).Int64("groupID", *donate.GroupID).Msg("Failed to load group leader")
		}
		return
	}

	link := fmt.Sprintf("/groups/%d/donates", *donate.GroupID)
	content := fmt.Sprintf("%s donated %s to your group", donor.Username, donate.Amount.String())

	notification := &models.Notification{
		AccountID: leader.ID,
		Type:      models.NotificationDonate,
		Content:   content,
		Link:      &link,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("groupID", *donate.GroupID).Msg("Failed to notify group leader")
	}
}

// ListByGroup returns a page of a group's donations
func (s *DonateService) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Donate, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.donateRepo.ListByGroup(ctx, groupID, offset, limit)
}

// ListByStory returns a page of a story's donations
func (s *DonateService) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Donate, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.donateRepo.ListByStory(ctx, storyID, offset, limit)
}
