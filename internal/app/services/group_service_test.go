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

func newTestGroupService(store *memory.Store) (*GroupService, *AuthService) {
	authService := newTestAuthService(store)
	return NewGroupService(store.Groups(), store.Accounts(), zerolog.Nop()), authService
}

// seedGroup creates a group through the repository with the given account as
// leader, so tests can exercise leader authority without an admin creator.
func seedGroup(t *testing.T, store *memory.Store, leaderID int64, name string) *models.Group {
	t.Helper()
	group := &models.Group{Name: name}
	require.NoError(t, store.Groups().CreateWithLeader(context.Background(), group, leaderID))
	return group
}

func TestGroupCreate_CreatorBecomesLeader(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	user := seedAccount(t, authService, "user")
	admin := seedAdmin(t, store)

	_, err := svc.Create(ctx, user, "Scans", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	group, err := svc.Create(ctx, admin, "Scans", nil, nil)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)

	// The creator takes the leader seat atomically with the group
	creator, err := store.Accounts().GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, creator.GroupID)
	assert.Equal(t, group.ID, *creator.GroupID)
	require.NotNil(t, creator.GroupRole)
	assert.Equal(t, models.GroupRoleLeader, *creator.GroupRole)

	// The non-admin is untouched
	bystander, err := store.Accounts().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, bystander.GroupID)
}

func TestGroupCreate_DuplicateName(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	leader := seedAccount(t, authService, "leader")
	admin := seedAdmin(t, store)

	seedGroup(t, store, leader.ID, "Scans")

	_, err := svc.Create(ctx, admin, "Scans", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrGroupAlreadyExists)
}

func TestGroupCreate_CreatorAlreadyInGroup(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newTestGroupService(store)

	admin := seedAdmin(t, store)

	_, err := svc.Create(ctx, admin, "Scans", nil, nil)
	require.NoError(t, err)

	creator, err := store.Accounts().GetByID(ctx, admin.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, creator, "Other Scans", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInOtherGroup)
}

func TestGroupUpdate_LeaderOrAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	leaderAcc := seedAccount(t, authService, "leader")
	outsider := seedAccount(t, authService, "outsider")

	group := seedGroup(t, store, leaderAcc.ID, "Scans")

	desc := "we translate things"
	_, err := svc.Update(ctx, outsider, group.ID, GroupChanges{Description: &desc})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Reload the leader so its group membership is visible to the policy
	leader, err := store.Accounts().GetByID(ctx, leaderAcc.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, leader, group.ID, GroupChanges{Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
	assert.Equal(t, "Scans", updated.Name)
}

func TestGroupAddMember(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	leaderAcc := seedAccount(t, authService, "leader")
	member := seedAccount(t, authService, "member")

	group := seedGroup(t, store, leaderAcc.ID, "Scans")

	leader, err := store.Accounts().GetByID(ctx, leaderAcc.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, leader, group.ID, member.ID))

	got, err := store.Accounts().GetByID(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, group.ID, *got.GroupID)
	require.NotNil(t, got.GroupRole)
	assert.Equal(t, models.GroupRoleMember, *got.GroupRole)

	// Re-adding the same member succeeds and leaves the membership intact
	require.NoError(t, svc.AddMember(ctx, leader, group.ID, member.ID))

	got, err = store.Accounts().GetByID(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, group.ID, *got.GroupID)
	require.NotNil(t, got.GroupRole)
	assert.Equal(t, models.GroupRoleMember, *got.GroupRole)
}

func TestGroupAddMember_CrossGroupConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	leaderOne := seedAccount(t, authService, "leaderone")
	leaderTwo := seedAccount(t, authService, "leadertwo")
	member := seedAccount(t, authService, "member")
	admin := seedAdmin(t, store)

	groupOne := seedGroup(t, store, leaderOne.ID, "One")
	groupTwo := seedGroup(t, store, leaderTwo.ID, "Two")

	require.NoError(t, svc.AddMember(ctx, admin, groupOne.ID, member.ID))

	err := svc.AddMember(ctx, admin, groupTwo.ID, member.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInOtherGroup)
}

func TestGroupRemoveMember(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	leaderAcc := seedAccount(t, authService, "leader")
	member := seedAccount(t, authService, "member")
	admin := seedAdmin(t, store)

	group := seedGroup(t, store, leaderAcc.ID, "Scans")
	require.NoError(t, svc.AddMember(ctx, admin, group.ID, member.ID))

	require.NoError(t, svc.RemoveMember(ctx, admin, group.ID, member.ID))

	got, err := store.Accounts().GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Nil(t, got.GroupRole)

	// Removing an account that is not a member is a bad request
	err = svc.RemoveMember(ctx, admin, group.ID, member.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGroupDelete_DetachesMembers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, authService := newTestGroupService(store)

	leaderAcc := seedAccount(t, authService, "leader")
	member := seedAccount(t, authService, "member")
	admin := seedAdmin(t, store)

	group := seedGroup(t, store, leaderAcc.ID, "Scans")
	require.NoError(t, svc.AddMember(ctx, admin, group.ID, member.ID))

	require.NoError(t, svc.Delete(ctx, admin, group.ID))

	_, err := store.Groups().GetByID(ctx, group.ID)
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)

	// Members survive with the membership cleared
	for _, id := range []int64{leaderAcc.ID, member.ID} {
		got, err := store.Accounts().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.GroupID)
		assert.Nil(t, got.GroupRole)
	}
}
