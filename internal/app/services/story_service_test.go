package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories/memory"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

func newTestStoryService(store *memory.Store) *StoryService {
	return NewStoryService(store.Stories(), store.Chapters(), store.Groups(),
		store.Follows(), store.Notifications(), zerolog.Nop())
}

// storyFixture seeds an admin, a group with a leader, and a story assigned
// to that group.
type storyFixture struct {
	store   *memory.Store
	stories *StoryService
	groups  *GroupService
	auth    *AuthService
	admin   *models.Account
	leader  *models.Account
	group   *models.Group
	story   *models.Story
}

func newStoryFixture(t *testing.T) *storyFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)
	groupService := NewGroupService(store.Groups(), store.Accounts(), zerolog.Nop())
	storyService := newTestStoryService(store)

	leaderAcc := seedAccount(t, authService, "leader")
	admin := seedAdmin(t, store)

	group := seedGroup(t, store, leaderAcc.ID, "Scans")

	leader, err := store.Accounts().GetByID(ctx, leaderAcc.ID)
	require.NoError(t, err)

	story, err := storyService.Create(ctx, leader, "One Piece", nil, []string{"action"}, nil)
	require.NoError(t, err)

	require.NoError(t, storyService.AssignGroup(ctx, admin, story.ID, group.ID))

	return &storyFixture{
		store:   store,
		stories: storyService,
		groups:  groupService,
		auth:    authService,
		admin:   admin,
		leader:  leader,
		group:   group,
		story:   story,
	}
}

func TestStoryCreate_StartsPending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)
	svc := newTestStoryService(store)

	user := seedAccount(t, authService, "user")

	story, err := svc.Create(ctx, user, "Berserk", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPending, story.Approval)
	require.NotNil(t, story.CreatorID)
	assert.Equal(t, user.ID, *story.CreatorID)

	_, err = svc.Create(ctx, nil, "Anon", nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Create(ctx, user, "   ", nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStorySetApproval_AdminOnly(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	_, err := fx.stories.SetApproval(ctx, fx.leader, fx.story.ID, models.ApprovalApproved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	story, err := fx.stories.SetApproval(ctx, fx.admin, fx.story.ID, models.ApprovalApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, story.Approval)
}

func TestStoryUpdate_CreatorOrAdmin(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	outsider := seedAccount(t, fx.auth, "outsider")

	title := "One Piece (new translation)"
	_, err := fx.stories.Update(ctx, outsider, fx.story.ID, StoryChanges{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := fx.stories.Update(ctx, fx.leader, fx.story.ID, StoryChanges{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestAssignGroup_DuplicateConflict(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	err := fx.stories.AssignGroup(ctx, fx.admin, fx.story.ID, fx.group.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateChapter_Authority(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	outsider := seedAccount(t, fx.auth, "outsider")

	_, err := fx.stories.CreateChapter(ctx, outsider, fx.story.ID, fx.group.ID, 1, nil, "pages")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	chapter, err := fx.stories.CreateChapter(ctx, fx.leader, fx.story.ID, fx.group.ID, 1, nil, "pages")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPending, chapter.Approval)
	assert.Equal(t, fx.group.ID, chapter.GroupID)

	// Admin may publish for any assigned group
	_, err = fx.stories.CreateChapter(ctx, fx.admin, fx.story.ID, fx.group.ID, 2, nil, "pages")
	assert.NoError(t, err)
}

func TestCreateChapter_RequiresAssignment(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	require.NoError(t, fx.stories.UnassignGroup(ctx, fx.admin, fx.story.ID, fx.group.ID))

	_, err := fx.stories.CreateChapter(ctx, fx.leader, fx.story.ID, fx.group.ID, 1, nil, "pages")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateChapter_NotifiesFollowers(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	readerOne := seedAccount(t, fx.auth, "readerone")
	readerTwo := seedAccount(t, fx.auth, "readertwo")

	for _, reader := range []*models.Account{readerOne, readerTwo} {
		follow := &models.Follow{AccountID: reader.ID, StoryID: &fx.story.ID}
		require.NoError(t, fx.store.Follows().Create(ctx, follow))
	}

	_, err := fx.stories.CreateChapter(ctx, fx.leader, fx.story.ID, fx.group.ID, 1, nil, "pages")
	require.NoError(t, err)

	for _, reader := range []*models.Account{readerOne, readerTwo} {
		notifications, err := fx.store.Notifications().ListByAccount(ctx, reader.ID, 0, 10)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotificationNewChapter, notifications[0].Type)
		assert.False(t, notifications[0].IsRead)
		assert.NotNil(t, notifications[0].Link)
	}

	// The publisher itself follows nothing and gets nothing
	notifications, err := fx.store.Notifications().ListByAccount(ctx, fx.leader.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestListChapters_ReadingOrder(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	for _, number := range []int{3, 1, 2} {
		_, err := fx.stories.CreateChapter(ctx, fx.leader, fx.story.ID, fx.group.ID, number, nil, "pages")
		require.NoError(t, err)
	}

	chapters, err := fx.stories.ListChapters(ctx, fx.story.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 2, chapters[1].Number)
	assert.Equal(t, 3, chapters[2].Number)
}

func TestUpdateChapter_GroupLeaderOnly(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	chapter, err := fx.stories.CreateChapter(ctx, fx.leader, fx.story.ID, fx.group.ID, 1, nil, "pages")
	require.NoError(t, err)

	outsider := seedAccount(t, fx.auth, "outsider")
	content := "better pages"
	_, err = fx.stories.UpdateChapter(ctx, outsider, chapter.ID, ChapterChanges{Content: &content})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := fx.stories.UpdateChapter(ctx, fx.leader, chapter.ID, ChapterChanges{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
}

func TestStoryDelete_CascadesChapters(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)

	chapter, err := fx.stories.CreateChapter(ctx, fx.leader, fx.story.ID, fx.group.ID, 1, nil, "pages")
	require.NoError(t, err)

	require.NoError(t, fx.stories.Delete(ctx, fx.admin, fx.story.ID))

	_, err = fx.store.Stories().GetByID(ctx, fx.story.ID)
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
	_, err = fx.store.Chapters().GetByID(ctx, chapter.ID)
	assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)
}
