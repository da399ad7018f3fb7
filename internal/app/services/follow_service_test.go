package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranminh/mangareader/internal/app/repositories/memory"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

func newTestFollowService(store *memory.Store) *FollowService {
	return NewFollowService(store.Follows(), store.Stories(), store.Groups(), zerolog.Nop())
}

func TestFollowCreate(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestFollowService(fx.store)

	reader := seedAccount(t, fx.auth, "reader")

	follow, err := svc.Create(ctx, reader, FollowTarget{StoryID: &fx.story.ID})
	require.NoError(t, err)
	assert.Equal(t, reader.ID, follow.AccountID)

	// The same account and story pair cannot be followed twice
	_, err = svc.Create(ctx, reader, FollowTarget{StoryID: &fx.story.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFollowing)

	// A group follow is an independent record
	_, err = svc.Create(ctx, reader, FollowTarget{GroupID: &fx.group.ID})
	require.NoError(t, err)

	follows, err := svc.ListByAccount(ctx, reader, reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, follows, 2)
}

func TestFollowCreate_TargetValidation(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestFollowService(fx.store)

	reader := seedAccount(t, fx.auth, "reader")

	_, err := svc.Create(ctx, reader, FollowTarget{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, reader, FollowTarget{StoryID: &fx.story.ID, GroupID: &fx.group.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	missing := int64(9999)
	_, err = svc.Create(ctx, reader, FollowTarget{GroupID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)

	_, err = svc.Create(ctx, nil, FollowTarget{StoryID: &fx.story.ID})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestFollowList_OwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestFollowService(fx.store)

	reader := seedAccount(t, fx.auth, "reader")
	snoop := seedAccount(t, fx.auth, "snoop")

	_, err := svc.Create(ctx, reader, FollowTarget{StoryID: &fx.story.ID})
	require.NoError(t, err)

	_, err = svc.ListByAccount(ctx, snoop, reader.ID, 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	follows, err := svc.ListByAccount(ctx, fx.admin, reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, follows, 1)
}

func TestFollowDelete_OwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestFollowService(fx.store)

	reader := seedAccount(t, fx.auth, "reader")
	snoop := seedAccount(t, fx.auth, "snoop")

	follow, err := svc.Create(ctx, reader, FollowTarget{StoryID: &fx.story.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, snoop, follow.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, reader, follow.ID))

	err = svc.Delete(ctx, reader, follow.ID)
	assert.ErrorIs(t, err, apperrors.ErrFollowNotFound)
}
