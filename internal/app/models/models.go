package models

// Role defines the platform-wide account role
type Role string

const (
	RoleUser  Role = "user"
	RoleTeam  Role = "team" // reserved, currently carries no extra authority
	RoleAdmin Role = "admin"
)

// AccountStatus defines the account lifecycle state
type AccountStatus string

const (
	StatusActive     AccountStatus = "active"
	StatusInactive   AccountStatus = "inactive"
	StatusAnonymized AccountStatus = "anonymized"
	StatusBanned     AccountStatus = "banned"
)

// GroupRole defines an account's role within its translation group
type GroupRole string

const (
	GroupRoleLeader GroupRole = "leader"
	GroupRoleMember GroupRole = "member"
)

// ApprovalStatus defines the moderation state of stories and chapters
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// NotificationType classifies notifications
type NotificationType string

const (
	NotificationNewStory      NotificationType = "new_story"
	NotificationNewChapter    NotificationType = "new_chapter"
	NotificationAdminFeedback NotificationType = "admin_feedback"
	NotificationDonate        NotificationType = "donate"
	NotificationOther         NotificationType = "other"
)
