package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories/memory"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// seedAccount registers an account through the auth service and returns it
func seedAccount(t *testing.T, svc *AuthService, username string) *models.Account {
	t.Helper()
	account, err := svc.Register(context.Background(), username, username+"@example.com", "password1")
	require.NoError(t, err)
	return account
}

// seedAdmin creates an admin directly in the store
func seedAdmin(t *testing.T, store *memory.Store) *models.Account {
	t.Helper()
	hash := "$2a$12$notarealhashnotarealhashnotarealhashnotarealhash"
	admin := &models.Account{
		Username:     "admin",
		PasswordHash: &hash,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	}
	require.NoError(t, store.Accounts().Create(context.Background(), admin))
	return admin
}

func newTestAccountService(store *memory.Store) (*AccountService, *AuthService) {
	authService := newTestAuthService(store)
	return NewAccountService(store.Accounts(), authService, zerolog.Nop()), authService
}

func TestAccountReadSafe_EmailVisibility(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")
	other := seedAccount(t, authService, "other")
	admin := seedAdmin(t, store)

	// Anonymous viewer
	got, err := svc.ReadSafe(ctx, nil, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Email)

	// Unrelated account
	got, err = svc.ReadSafe(ctx, other, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Email)

	// Owner
	got, err = svc.ReadSafe(ctx, owner, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, "owner@example.com", *got.Email)

	// Admin
	got, err = svc.ReadSafe(ctx, admin, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Email)
}

func TestAccountReadSafeByUsername(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")

	got, err := svc.ReadSafeByUsername(ctx, nil, "owner")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.ID)
	assert.Nil(t, got.Email)

	got, err = svc.ReadSafeByUsername(ctx, owner, "owner")
	require.NoError(t, err)
	require.NotNil(t, got.Email)

	_, err = svc.ReadSafeByUsername(ctx, owner, "missing")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestAccountUpdate_Authorization(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")
	other := seedAccount(t, authService, "other")

	email := "new@example.com"
	_, err := svc.Update(ctx, other, owner.ID, AccountChanges{Email: &email})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The team role grants no authority over other accounts
	team := seedAccount(t, authService, "teammate")
	team.Role = models.RoleTeam
	require.NoError(t, store.Accounts().Update(ctx, team))

	_, err = svc.Update(ctx, team, owner.ID, AccountChanges{Email: &email})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(ctx, owner, owner.ID, AccountChanges{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, email, *updated.Email)
}

func TestAccountUpdate_PasswordRehash(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")
	oldHash := *owner.PasswordHash

	password := "newpassword1"
	updated, err := svc.Update(ctx, owner, owner.ID, AccountChanges{Password: &password})
	require.NoError(t, err)
	require.NotNil(t, updated.PasswordHash)
	assert.NotEqual(t, oldHash, *updated.PasswordHash)
	assert.NotEqual(t, password, *updated.PasswordHash)

	// The new password works for login
	_, _, err = authService.Login(ctx, "owner", password)
	assert.NoError(t, err)
}

func TestAccountUpdate_RoleEscalationRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")
	admin := seedAdmin(t, store)

	adminRole := models.RoleAdmin
	// Rejected regardless of who asks, admin included
	_, err := svc.Update(ctx, admin, owner.ID, AccountChanges{Role: &adminRole})
	assert.ErrorIs(t, err, apperrors.ErrRoleEscalation)

	_, err = svc.Update(ctx, owner, owner.ID, AccountChanges{Role: &adminRole})
	assert.ErrorIs(t, err, apperrors.ErrRoleEscalation)
}

func TestAccountUpdate_RoleAndStatusAdminOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")
	admin := seedAdmin(t, store)

	team := models.RoleTeam
	_, err := svc.Update(ctx, owner, owner.ID, AccountChanges{Role: &team})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(ctx, admin, owner.ID, AccountChanges{Role: &team})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeam, updated.Role)

	banned := models.StatusBanned
	_, err = svc.Update(ctx, owner, owner.ID, AccountChanges{Status: &banned})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err = svc.Update(ctx, admin, owner.ID, AccountChanges{Status: &banned})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBanned, updated.Status)
}

func TestAccountAnonymize(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")

	got, err := svc.Anonymize(ctx, owner, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("anonymous_%d", owner.ID), got.Username)
	assert.Nil(t, got.Email)
	assert.Nil(t, got.PasswordHash)
	assert.Equal(t, models.StatusAnonymized, got.Status)

	// Idempotent: the second run leaves it unchanged
	again, err := svc.Anonymize(ctx, owner, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Username, again.Username)
	assert.Equal(t, models.StatusAnonymized, again.Status)

	// No credentials left to log in with
	_, _, err = authService.Login(ctx, "owner", "password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAccountDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")

	// Hang a story, comment, follow and notification off the account
	story := &models.Story{Title: "T", Tags: []string{}, CreatorID: &owner.ID, Approval: models.ApprovalPending}
	require.NoError(t, store.Stories().Create(ctx, story))

	comment := &models.Comment{AccountID: &owner.ID, StoryID: &story.ID, Content: "nice"}
	require.NoError(t, store.Comments().Create(ctx, comment))

	follow := &models.Follow{AccountID: owner.ID, StoryID: &story.ID}
	require.NoError(t, store.Follows().Create(ctx, follow))

	notification := &models.Notification{AccountID: owner.ID, Type: models.NotificationOther, Content: "hi"}
	require.NoError(t, store.Notifications().Create(ctx, notification))

	require.NoError(t, svc.Delete(ctx, owner, owner.ID))

	_, err := store.Accounts().GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	// Follows and notifications go with the account
	_, err = store.Follows().GetByID(ctx, follow.ID)
	assert.ErrorIs(t, err, apperrors.ErrFollowNotFound)
	_, err = store.Notifications().GetByID(ctx, notification.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

	// Comments and stories are retained with the author detached
	kept, err := store.Comments().GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.AccountID)

	keptStory, err := store.Stories().GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Nil(t, keptStory.CreatorID)
}

func TestAccountList_AdminOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestAccountService(store)

	owner := seedAccount(t, authService, "owner")
	admin := seedAdmin(t, store)

	_, err := svc.List(ctx, owner, 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	accounts, err := svc.List(ctx, admin, 0, 10)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
