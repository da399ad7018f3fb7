package models

import "time"

// Story defines the story model based on the 'stories' table
type Story struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description,omitempty" db:"description"`
	Tags        []string       `json:"tags" db:"tags"`
	Author      *string        `json:"author,omitempty" db:"author"` // Original author credit, free text
	CreatorID   *int64         `json:"creatorId,omitempty" db:"creator_id"` // Account that submitted the story (nulled if the account is deleted)
	Approval    ApprovalStatus `json:"approval" db:"approval"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// Chapter defines the chapter model based on the 'chapters' table.
// Content holds opaque page data passed through unchanged.
type Chapter struct {
	ID        int64          `json:"id" db:"id"`
	StoryID   int64          `json:"storyId" db:"story_id"`
	GroupID   int64          `json:"groupId" db:"group_id"` // Translating group; chapters are removed with their group
	Number    int            `json:"number" db:"number"`
	Title     *string        `json:"title,omitempty" db:"title"`
	Content   string         `json:"content" db:"content"`
	Approval  ApprovalStatus `json:"approval" db:"approval"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}
