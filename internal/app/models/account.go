package models

import (
	"fmt"
	"time"
)

// Account defines the account model based on the 'accounts' table
type Account struct {
	ID           int64         `json:"id" db:"id" example:"1"`                                   // Unique identifier for the account
	Username     string        `json:"username" db:"username" example:"alice"`                   // Unique username, kept even after anonymization
	Email        *string       `json:"email,omitempty" db:"email"`                               // Email address (nulled by anonymization)
	PasswordHash *string       `json:"-" db:"password_hash"`                                     // Hashed password (excluded from JSON, nulled by anonymization)
	Role         Role          `json:"role" db:"role" example:"user"`                            // Platform role (user, team, admin)
	Status       AccountStatus `json:"status" db:"status" example:"active"`                      // Lifecycle status
	GroupID      *int64        `json:"groupId,omitempty" db:"group_id"`                          // Translation group membership (nullable)
	GroupRole    *GroupRole    `json:"groupRole,omitempty" db:"group_role"`                      // Role within the group (leader/member, nullable)
	CreatedAt    time.Time     `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the account was last updated
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsLeaderOf reports whether the account leads the given group.
func (a *Account) IsLeaderOf(groupID int64) bool {
	return a.GroupID != nil && *a.GroupID == groupID &&
		a.GroupRole != nil && *a.GroupRole == GroupRoleLeader
}

// AnonymousUsername returns the synthetic username assigned by anonymization.
// It is derived from the account id, which keeps it globally unique.
func AnonymousUsername(id int64) string {
	return fmt.Sprintf("anonymous_%d", id)
}
