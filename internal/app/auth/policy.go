// Package auth holds the authorization policy: pure decisions over already
// loaded records. It never touches a repository, which keeps every rule
// testable without a store.
package auth

import (
	"github.com/tranminh/mangareader/internal/app/models"
)

// Three rule shapes cover the whole surface. The team role carries no
// authority of its own anywhere below; it is a reserved placeholder and
// behaves exactly like user until product decides otherwise.

// CanActOnAccount reports whether actor may mutate (update, anonymize,
// delete) the account with the given owner id. Self or admin.
func CanActOnAccount(actor *models.Account, ownerID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin()
}

// CanSeeEmail reports whether viewer may see the target account's email.
// Same shape as CanActOnAccount; split out because it guards reads.
func CanSeeEmail(viewer *models.Account, targetID int64) bool {
	return CanActOnAccount(viewer, targetID)
}

// CanCreateGroup reports whether actor may create a translation group.
// Admin only.
func CanCreateGroup(actor *models.Account) bool {
	return actor != nil && actor.IsAdmin()
}

// CanManageGroup reports whether actor may update, delete, or add members to
// the given group. Admin, or leader of that specific group.
func CanManageGroup(actor *models.Account, groupID int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.IsLeaderOf(groupID)
}

// CanModerateContent reports whether actor may change approval status of
// stories and chapters. Admin only.
func CanModerateContent(actor *models.Account) bool {
	return actor != nil && actor.IsAdmin()
}

// CanActOnOwned reports whether actor may mutate a record owned by ownerID,
// where ownership may already have been scrubbed (deleted author). Records
// without an owner are admin territory.
func CanActOnOwned(actor *models.Account, ownerID *int64) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == actor.ID
}
