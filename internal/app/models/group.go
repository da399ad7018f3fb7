package models

import "time"

// Group defines the translation group model based on the 'groups' table
type Group struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`                       // Unique, immutable after creation
	Description *string   `json:"description,omitempty" db:"description"`
	Avatar      *string   `json:"avatar,omitempty" db:"avatar"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// StoryGroup links a story to a translation group based on the 'story_groups' table
type StoryGroup struct {
	StoryID  int64     `json:"storyId" db:"story_id"`
	GroupID  int64     `json:"groupId" db:"group_id"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}
