package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/helpers"
)

// NotificationService manages per-account notification feeds
type NotificationService struct {
	notificationRepo repositories.INotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.INotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Notify creates a single notification for an account. Admin feedback and
// system events come through here; fan-outs use the repository batch path.
func (s *NotificationService) Notify(ctx context.Context, accountID int64, typ models.NotificationType, content string, link *string) (*models.Notification, error) {
	notification := &models.Notification{
		AccountID: accountID,
		Type:      typ,
		Content:   content,
		Link:      link,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// List returns a page of the actor's own notifications, newest first
func (s *NotificationService) List(ctx context.Context, actor *models.Account, offset, limit int) ([]*models.Notification, error) {
	if actor == nil {
		return nil, apperrors.ErrPermissionDenied
	}
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.notificationRepo.ListByAccount(ctx, actor.ID, offset, limit)
}

// MarkRead flags a notification as read. Recipient only.
func (s *NotificationService) MarkRead(ctx context.Context, actor *models.Account, id int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor == nil || actor.ID != notification.AccountID {
		return apperrors.ErrPermissionDenied
	}

	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead flags every notification of the actor as read
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *models.Account) error {
	if actor == nil {
		return apperrors.ErrPermissionDenied
	}
	return s.notificationRepo.MarkAllRead(ctx, actor.ID)
}
