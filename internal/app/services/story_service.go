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

// StoryChanges holds the mutable story fields
type StoryChanges struct {
	Title       *string
	Description *string
	Tags        *[]string
	Author      *string
}

// ChapterChanges holds the mutable chapter fields
type ChapterChanges struct {
	Number  *int
	Title   *string
	Content *string
}

// StoryService manages stories, their chapters and translation assignments
type StoryService struct {
	storyRepo        repositories.IStoryRepository
	chapterRepo      repositories.IChapterRepository
	groupRepo        repositories.IGroupRepository
	followRepo       repositories.IFollowRepository
	notificationRepo repositories.INotificationRepository
	logger           zerolog.Logger
}

// NewStoryService creates a new StoryService
func NewStoryService(
	storyRepo repositories.IStoryRepository,
	chapterRepo repositories.IChapterRepository,
	groupRepo repositories.IGroupRepository,
	followRepo repositories.IFollowRepository,
	notificationRepo repositories.INotificationRepository,
	logger zerolog.Logger,
) *StoryService {
	return &StoryService{
		storyRepo:        storyRepo,
		chapterRepo:      chapterRepo,
		groupRepo:        groupRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create registers a new story. Any authenticated account may submit one;
// it starts out pending until an admin approves it.
func (s *StoryService) Create(ctx context.Context, actor *models.Account, title string, description *string, tags []string, author *string) (*models.Story, error) {
	if actor == nil {
		return nil, apperrors.ErrPermissionDenied
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: story title cannot be empty", apperrors.ErrValidationFailed)
	}
	if tags == nil {
		tags = []string{}
	}

	story := &models.Story{
		Title:       title,
		Description: description,
		Tags:        tags,
		Author:      author,
		CreatorID:   &actor.ID,
		Approval:    models.ApprovalPending,
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("storyID", story.ID).
		Int64("creatorID", actor.ID).
		Msg("Story created")

	return story, nil
}

// Get returns the story with the given ID
func (s *StoryService) Get(ctx context.Context, id int64) (*models.Story, error) {
	return s.storyRepo.GetByID(ctx, id)
}

// List returns a page of stories
func (s *StoryService) List(ctx context.Context, offset, limit int) ([]*models.Story, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.storyRepo.List(ctx, offset, limit)
}

// Update applies metadata changes to a story. Creator or admin.
func (s *StoryService) Update(ctx context.Context, actor *models.Account, id int64, changes StoryChanges) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanActOnOwned(actor, story.CreatorID) {
		return nil, apperrors.ErrPermissionDenied
	}

	if changes.Title != nil {
		title := strings.TrimSpace(*changes.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: story title cannot be empty", apperrors.ErrValidationFailed)
		}
		story.Title = title
	}
	if changes.Description != nil {
		story.Description = changes.Description
	}
	if changes.Tags != nil {
		story.Tags = *changes.Tags
	}
	if changes.Author != nil {
		story.Author = changes.Author
	}

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// SetApproval moves a story through the moderation states. Admin only.
func (s *StoryService) SetApproval(ctx context.Context, actor *models.Account, id int64, approval models.ApprovalStatus) (*models.Story, error) {
	if !authz.CanModerateContent(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	story.Approval = approval
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("storyID", id).
		Str("approval", string(approval)).
		Msg("Story approval changed")

	return story, nil
}

// Delete removes a story and everything hanging off it: chapters, comments,
// follows, donates and group assignments. Creator or admin.
func (s *StoryService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanActOnOwned(actor, story.CreatorID) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.storyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("storyID", id).Msg("Story deleted")

	return nil
}

// AssignGroup gives a translation group working rights on a story. Admin or
// leader of that group; assigning the same pair twice is a conflict.
func (s *StoryService) AssignGroup(ctx context.Context, actor *models.Account, storyID, groupID int64) error {
	if !authz.CanManageGroup(actor, groupID) {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		return err
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	if err := s.storyRepo.AssignGroup(ctx, storyID, groupID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("storyID", storyID).
		Int64("groupID", groupID).
		Msg("Group assigned to story")

	return nil
}

// UnassignGroup removes a group's working rights on a story
func (s *StoryService) UnassignGroup(ctx context.Context, actor *models.Account, storyID, groupID int64) error {
	if !authz.CanManageGroup(actor, groupID) {
		return apperrors.ErrPermissionDenied
	}

	return s.storyRepo.UnassignGroup(ctx, storyID, groupID)
}

// CreateChapter adds a chapter to a story on behalf of a translation group.
// The group must be assigned to the story, and the actor must be an admin or
// that group's leader. Followers of the story are notified.
func (s *StoryService) CreateChapter(ctx context.Context, actor *models.Account, storyID, groupID int64, number int, title *string, content string) (*models.Chapter, error) {
	if !authz.CanManageGroup(actor, groupID) {
		return nil, apperrors.ErrPermissionDenied
	}

	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}

	assigned, err := s.storyRepo.GroupAssigned(ctx, storyID, groupID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, apperrors.NewBadRequestError("group is not assigned to this story")
	}

	if number < 0 {
		return nil, fmt.Errorf("%w: chapter number cannot be negative", apperrors.ErrValidationFailed)
	}

	chapter := &models.Chapter{
		StoryID:  storyID,
		GroupID:  groupID,
		Number:   number,
		Title:    title,
		Content:  content,
		Approval: models.ApprovalPending,
	}

	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.notifyStoryFollowers(ctx, story, chapter)

	s.logger.Info().
		Int64("chapterID", chapter.ID).
		Int64("storyID", storyID).
		Int64("groupID", groupID).
		Msg("Chapter created")

	return chapter, nil
}

// notifyStoryFollowers fans a new_chapter notification out to every follower
// of the story. Notification failures are logged, never surfaced; the chapter
// is already committed.
func (s *StoryService) notifyStoryFollowers(ctx context.Context, story *models.Story, chapter *models.Chapter) {
	followerIDs, err := s.followRepo.FollowerIDsByStory(ctx, story.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("storyID", story.ID).Msg("Failed to load story followers")
		return
	}
	if len(followerIDs) == 0 {
		return
	}

	link := fmt.Sprintf("/stories/%d/chapters/%d", story.ID, chapter.ID)
	content := fmt.Sprintf("New chapter %d of %s", chapter.Number, story.Title)

	notifications := make([]*models.Notification, 0, len(followerIDs))
	for _, accountID := range followerIDs {
		notifications = append(notifications, &models.Notification{
			AccountID: accountID,
			Type:      models.NotificationNewChapter,
			Content:   content,
			Link:      &link,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error().Err(err).Int64("storyID", story.ID).Msg("Failed to notify story followers")
	}
}

// GetChapter returns the chapter with the given ID
func (s *StoryService) GetChapter(ctx context.Context, id int64) (*models.Chapter, error) {
	return s.chapterRepo.GetByID(ctx, id)
}

// ListChapters returns a page of a story's chapters in reading order
func (s *StoryService) ListChapters(ctx context.Context, storyID int64, offset, limit int) ([]*models.Chapter, error) {
	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		return nil, err
	}
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.chapterRepo.ListByStory(ctx, storyID, offset, limit)
}

// UpdateChapter applies changes to a chapter. Admin or leader of the group
// that published it.
func (s *StoryService) UpdateChapter(ctx context.Context, actor *models.Account, id int64, changes ChapterChanges) (*models.Chapter, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanManageGroup(actor, chapter.GroupID) {
		return nil, apperrors.ErrPermissionDenied
	}

	if changes.Number != nil {
		if *changes.Number < 0 {
			return nil, fmt.Errorf("%w: chapter number cannot be negative", apperrors.ErrValidationFailed)
		}
		chapter.Number = *changes.Number
	}
	if changes.Title != nil {
		chapter.Title = changes.Title
	}
	if changes.Content != nil {
		chapter.Content = *changes.Content
	}

	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

// SetChapterApproval moves a chapter through the moderation states. Admin only.
func (s *StoryService) SetChapterApproval(ctx context.Context, actor *models.Account, id int64, approval models.ApprovalStatus) (*models.Chapter, error) {
	if !authz.CanModerateContent(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chapter.Approval = approval
	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

// DeleteChapter removes a chapter. Admin or leader of the publishing group.
func (s *StoryService) DeleteChapter(ctx context.Context, actor *models.Account, id int64) error {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanManageGroup(actor, chapter.GroupID) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.chapterRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("chapterID", id).Msg("Chapter deleted")

	return nil
}
