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

func newTestNotificationService(store *memory.Store) *NotificationService {
	return NewNotificationService(store.Notifications(), zerolog.Nop())
}

func TestNotificationList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)
	svc := newTestNotificationService(store)

	reader := seedAccount(t, authService, "reader")

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.Notify(ctx, reader.ID, models.NotificationOther, content, nil)
		require.NoError(t, err)
	}

	notifications, err := svc.List(ctx, reader, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	assert.Equal(t, "third", notifications[0].Content)
	assert.Equal(t, "first", notifications[2].Content)

	_, err = svc.List(ctx, nil, 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestNotificationMarkRead_RecipientOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)
	svc := newTestNotificationService(store)

	reader := seedAccount(t, authService, "reader")
	other := seedAccount(t, authService, "other")

	notification, err := svc.Notify(ctx, reader.ID, models.NotificationOther, "hello", nil)
	require.NoError(t, err)
	assert.False(t, notification.IsRead)

	err = svc.MarkRead(ctx, other, notification.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.MarkRead(ctx, reader, notification.ID))

	got, err := store.Notifications().GetByID(ctx, notification.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	err = svc.MarkRead(ctx, reader, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestNotificationMarkAllRead(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)
	svc := newTestNotificationService(store)

	reader := seedAccount(t, authService, "reader")
	other := seedAccount(t, authService, "other")

	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, reader.ID, models.NotificationOther, "update", nil)
		require.NoError(t, err)
	}
	otherNotification, err := svc.Notify(ctx, other.ID, models.NotificationOther, "update", nil)
	require.NoError(t, err)

	require.NoError(t, svc.MarkAllRead(ctx, reader))

	notifications, err := svc.List(ctx, reader, 0, 10)
	require.NoError(t, err)
	for _, n := range notifications {
		assert.True(t, n.IsRead)
	}

	// Other accounts' notifications are untouched
	got, err := store.Notifications().GetByID(ctx, otherNotification.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)
}
