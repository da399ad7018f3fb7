package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comment defines the comment model based on the 'comments' table.
// Exactly one of StoryID, GroupID, ChapterID is set.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	AccountID *int64    `json:"accountId,omitempty" db:"account_id"` // Author; nulled if the account is hard-deleted, content retained
	StoryID   *int64    `json:"storyId,omitempty" db:"story_id"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`
	ChapterID *int64    `json:"chapterId,omitempty" db:"chapter_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Follow defines the subscription model based on the 'follows' table.
// Exactly one of StoryID, GroupID is set.
type Follow struct {
	ID        int64     `json:"id" db:"id"`
	AccountID int64     `json:"accountId" db:"account_id"`
	StoryID   *int64    `json:"storyId,omitempty" db:"story_id"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Notification defines the notification model based on the 'notifications' table
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	AccountID int64            `json:"accountId" db:"account_id"`
	Type      NotificationType `json:"type" db:"type"`
	Content   string           `json:"content" db:"content"`
	Link      *string          `json:"link,omitempty" db:"link"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// Donate defines the donation model based on the 'donates' table.
// At most one of GroupID, StoryID is set; Amount is never negative.
type Donate struct {
	ID        int64           `json:"id" db:"id"`
	AccountID *int64          `json:"accountId,omitempty" db:"account_id"` // Donor; nulled if the account is hard-deleted, record retained
	GroupID   *int64          `json:"groupId,omitempty" db:"group_id"`
	StoryID   *int64          `json:"storyId,omitempty" db:"story_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Message   *string         `json:"message,omitempty" db:"message"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
