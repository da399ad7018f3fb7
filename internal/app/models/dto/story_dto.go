package dto

import (
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
)

// CreateStoryRequest represents a new story submission
type CreateStoryRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Author      *string  `json:"author,omitempty"`
}

// UpdateStoryRequest represents story metadata changes
type UpdateStoryRequest struct {
	Title       *string   `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Author      *string   `json:"author,omitempty"`
}

// SetApprovalRequest represents a moderation decision
type SetApprovalRequest struct {
	Approval string `json:"approval" binding:"required,oneof=pending approved rejected"`
}

// AssignGroupRequest represents giving a group working rights on a story
type AssignGroupRequest struct {
	GroupID int64 `json:"groupId" binding:"required,min=1"`
}

// StoryResponse represents story information as exposed over the API
type StoryResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Author      *string   `json:"author,omitempty"`
	CreatorID   *int64    `json:"creatorId,omitempty"`
	Approval    string    `json:"approval"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewStoryResponse maps a story model to its API shape
func NewStoryResponse(story *models.Story) StoryResponse {
	return StoryResponse{
		ID:          story.ID,
		Title:       story.Title,
		Description: story.Description,
		Tags:        story.Tags,
		Author:      story.Author,
		CreatorID:   story.CreatorID,
		Approval:    string(story.Approval),
		CreatedAt:   story.CreatedAt,
		UpdatedAt:   story.UpdatedAt,
	}
}

// NewStoryResponseList maps a page of stories
func NewStoryResponseList(stories []*models.Story) []StoryResponse {
	responses := make([]StoryResponse, 0, len(stories))
	for _, story := range stories {
		responses = append(responses, NewStoryResponse(story))
	}
	return responses
}

// CreateChapterRequest represents a new chapter published by a group
type CreateChapterRequest struct {
	GroupID int64   `json:"groupId" binding:"required,min=1"`
	Number  int     `json:"number" binding:"min=0"`
	Title   *string `json:"title,omitempty"`
	Content string  `json:"content" binding:"required"`
}

// UpdateChapterRequest represents chapter changes
type UpdateChapterRequest struct {
	Number  *int    `json:"number,omitempty" binding:"omitempty,min=0"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// ChapterResponse represents chapter information as exposed over the API
type ChapterResponse struct {
	ID        int64     `json:"id"`
	StoryID   int64     `json:"storyId"`
	GroupID   int64     `json:"groupId"`
	Number    int       `json:"number"`
	Title     *string   `json:"title,omitempty"`
	Content   string    `json:"content"`
	Approval  string    `json:"approval"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewChapterResponse maps a chapter model to its API shape
func NewChapterResponse(chapter *models.Chapter) ChapterResponse {
	return ChapterResponse{
		ID:        chapter.ID,
		StoryID:   chapter.StoryID,
		GroupID:   chapter.GroupID,
		Number:    chapter.Number,
		Title:     chapter.Title,
		Content:   chapter.Content,
		Approval:  string(chapter.Approval),
		CreatedAt: chapter.CreatedAt,
		UpdatedAt: chapter.UpdatedAt,
	}
}

// NewChapterResponseList maps a page of chapters
func NewChapterResponseList(chapters []*models.Chapter) []ChapterResponse {
	responses := make([]ChapterResponse, 0, len(chapters))
	for _, chapter := range chapters {
		responses = append(responses, NewChapterResponse(chapter))
	}
	return responses
}
