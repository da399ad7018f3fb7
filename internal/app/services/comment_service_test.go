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

func newTestCommentService(store *memory.Store) *CommentService {
	return NewCommentService(store.Comments(), store.Stories(), store.Groups(),
		store.Chapters(), zerolog.Nop())
}

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestCommentService(fx.store)

	reader := seedAccount(t, fx.auth, "reader")

	comment, err := svc.Create(ctx, reader, CommentTarget{StoryID: &fx.story.ID}, "great start")
	require.NoError(t, err)
	require.NotNil(t, comment.AccountID)
	assert.Equal(t, reader.ID, *comment.AccountID)

	comments, err := svc.ListByStory(ctx, fx.story.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great start", comments[0].Content)
}

func TestCommentCreate_TargetValidation(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestCommentService(fx.store)

	reader := seedAccount(t, fx.auth, "reader")

	tests := []struct {
		name   string
		target CommentTarget
	}{
		{"no target", CommentTarget{}},
		{"two targets", CommentTarget{StoryID: &fx.story.ID, GroupID: &fx.group.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, reader, tt.target, "hello")
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	missing := int64(9999)
	_, err := svc.Create(ctx, reader, CommentTarget{StoryID: &missing}, "hello")
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)

	_, err = svc.Create(ctx, reader, CommentTarget{GroupID: &fx.group.ID}, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, nil, CommentTarget{GroupID: &fx.group.ID}, "hello")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCommentDelete_AuthorOrAdmin(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestCommentService(fx.store)

	author := seedAccount(t, fx.auth, "author")
	other := seedAccount(t, fx.auth, "other")

	comment, err := svc.Create(ctx, author, CommentTarget{GroupID: &fx.group.ID}, "nice work")
	require.NoError(t, err)

	err = svc.Delete(ctx, other, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, author, comment.ID))

	// Admin may remove anyone's comment
	comment, err = svc.Create(ctx, other, CommentTarget{GroupID: &fx.group.ID}, "spam")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, fx.admin, comment.ID))

	err = svc.Delete(ctx, fx.admin, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestCommentDelete_OrphanedComment(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestCommentService(fx.store)
	accounts := NewAccountService(fx.store.Accounts(), fx.auth, zerolog.Nop())

	author := seedAccount(t, fx.auth, "author")
	comment, err := svc.Create(ctx, author, CommentTarget{StoryID: &fx.story.ID}, "kept after deletion")
	require.NoError(t, err)

	require.NoError(t, accounts.Delete(ctx, fx.admin, author.ID))

	orphan, err := fx.store.Comments().GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.AccountID)

	// Only an admin may remove an authorless comment
	bystander := seedAccount(t, fx.auth, "bystander")
	err = svc.Delete(ctx, bystander, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, fx.admin, comment.ID))
}
