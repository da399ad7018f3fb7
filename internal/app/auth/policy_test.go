package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tranminh/mangareader/internal/app/models"
)

func account(id int64, role models.Role) *models.Account {
	return &models.Account{ID: id, Role: role}
}

func leaderOf(id, groupID int64) *models.Account {
	leader := models.GroupRoleLeader
	return &models.Account{ID: id, Role: models.RoleUser, GroupID: &groupID, GroupRole: &leader}
}

func TestCanActOnAccount(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.Account
		ownerID int64
		want    bool
	}{
		{"nil actor", nil, 1, false},
		{"self", account(1, models.RoleUser), 1, true},
		{"other user", account(1, models.RoleUser), 2, false},
		{"team acts like user", account(1, models.RoleTeam), 2, false},
		{"admin on anyone", account(9, models.RoleAdmin), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActOnAccount(tt.actor, tt.ownerID))
		})
	}
}

func TestCanSeeEmail(t *testing.T) {
	assert.False(t, CanSeeEmail(nil, 1))
	assert.True(t, CanSeeEmail(account(1, models.RoleUser), 1))
	assert.False(t, CanSeeEmail(account(1, models.RoleUser), 2))
	assert.True(t, CanSeeEmail(account(9, models.RoleAdmin), 2))
}

func TestCanCreateGroup(t *testing.T) {
	assert.False(t, CanCreateGroup(nil))
	assert.False(t, CanCreateGroup(account(1, models.RoleUser)))
	assert.False(t, CanCreateGroup(account(1, models.RoleTeam)))
	assert.True(t, CanCreateGroup(account(1, models.RoleAdmin)))
}

func TestCanManageGroup(t *testing.T) {
	member := models.GroupRoleMember
	groupID := int64(5)

	tests := []struct {
		name  string
		actor *models.Account
		want  bool
	}{
		{"nil actor", nil, false},
		{"plain user", account(1, models.RoleUser), false},
		{"admin", account(1, models.RoleAdmin), true},
		{"leader of the group", leaderOf(1, groupID), true},
		{"leader of another group", leaderOf(1, 6), false},
		{"regular member of the group", &models.Account{ID: 1, Role: models.RoleUser, GroupID: &groupID, GroupRole: &member}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageGroup(tt.actor, groupID))
		})
	}
}

func TestCanModerateContent(t *testing.T) {
	assert.False(t, CanModerateContent(nil))
	assert.False(t, CanModerateContent(account(1, models.RoleUser)))
	assert.False(t, CanModerateContent(leaderOf(1, 5)))
	assert.True(t, CanModerateContent(account(1, models.RoleAdmin)))
}

func TestCanActOnOwned(t *testing.T) {
	owner := int64(3)

	assert.False(t, CanActOnOwned(nil, &owner))
	assert.True(t, CanActOnOwned(account(3, models.RoleUser), &owner))
	assert.False(t, CanActOnOwned(account(4, models.RoleUser), &owner))
	assert.True(t, CanActOnOwned(account(9, models.RoleAdmin), &owner))

	// Records whose owner was deleted are admin territory
	assert.False(t, CanActOnOwned(account(3, models.RoleUser), nil))
	assert.True(t, CanActOnOwned(account(9, models.RoleAdmin), nil))
}
