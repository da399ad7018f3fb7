package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories/memory"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

func newTestDonateService(store *memory.Store) *DonateService {
	return NewDonateService(store.Donates(), store.Accounts(), store.Groups(),
		store.Stories(), store.Notifications(), zerolog.Nop())
}

func TestDonateCreate_GroupNotifiesLeader(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestDonateService(fx.store)

	donor := seedAccount(t, fx.auth, "donor")

	donate, err := svc.Create(ctx, donor, DonateTarget{GroupID: &fx.group.ID},
		decimal.NewFromInt(25), nil)
	require.NoError(t, err)
	require.NotNil(t, donate.AccountID)
	assert.Equal(t, donor.ID, *donate.AccountID)
	assert.True(t, decimal.NewFromInt(25).Equal(donate.Amount))

	notifications, err := fx.store.Notifications().ListByAccount(ctx, fx.leader.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationDonate, notifications[0].Type)

	donates, err := svc.ListByGroup(ctx, fx.group.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, donates, 1)
}

func TestDonateCreate_StoryTarget(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestDonateService(fx.store)

	donor := seedAccount(t, fx.auth, "donor")

	_, err := svc.Create(ctx, donor, DonateTarget{StoryID: &fx.story.ID},
		decimal.NewFromFloat(9.99), nil)
	require.NoError(t, err)

	// Story donations do not notify anyone
	notifications, err := fx.store.Notifications().ListByAccount(ctx, fx.leader.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	donates, err := svc.ListByStory(ctx, fx.story.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, donates, 1)
}

func TestDonateCreate_Validation(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestDonateService(fx.store)

	donor := seedAccount(t, fx.auth, "donor")

	_, err := svc.Create(ctx, donor, DonateTarget{GroupID: &fx.group.ID},
		decimal.NewFromInt(-1), nil)
	assert.ErrorIs(t, err, apperrors.ErrNegativeAmount)

	// Zero is a valid amount
	_, err = svc.Create(ctx, donor, DonateTarget{GroupID: &fx.group.ID},
		decimal.Zero, nil)
	assert.NoError(t, err)

	_, err = svc.Create(ctx, donor, DonateTarget{}, decimal.NewFromInt(5), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, donor, DonateTarget{GroupID: &fx.group.ID, StoryID: &fx.story.ID},
		decimal.NewFromInt(5), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	missing := int64(9999)
	_, err = svc.Create(ctx, donor, DonateTarget{StoryID: &missing}, decimal.NewFromInt(5), nil)
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)

	_, err = svc.Create(ctx, nil, DonateTarget{GroupID: &fx.group.ID}, decimal.NewFromInt(5), nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDonateCreate_LeaderlessGroup(t *testing.T) {
	ctx := context.Background()
	fx := newStoryFixture(t)
	svc := newTestDonateService(fx.store)

	require.NoError(t, fx.groups.RemoveMember(ctx, fx.admin, fx.group.ID, fx.leader.ID))

	donor := seedAccount(t, fx.auth, "donor")

	// The donation is recorded even when nobody is left to notify
	_, err := svc.Create(ctx, donor, DonateTarget{GroupID: &fx.group.ID},
		decimal.NewFromInt(10), nil)
	require.NoError(t, err)

	donates, err := svc.ListByGroup(ctx, fx.group.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, donates, 1)
}
