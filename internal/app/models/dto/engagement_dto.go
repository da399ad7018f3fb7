package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tranminh/mangareader/internal/app/models"
)

// CreateCommentRequest represents a new comment. Exactly one target must be
// set; the service enforces it.
type CreateCommentRequest struct {
	StoryID   *int64 `json:"storyId,omitempty" binding:"omitempty,min=1"`
	GroupID   *int64 `json:"groupId,omitempty" binding:"omitempty,min=1"`
	ChapterID *int64 `json:"chapterId,omitempty" binding:"omitempty,min=1"`
	Content   string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentResponse represents comment information as exposed over the API
type CommentResponse struct {
	ID        int64     `json:"id"`
	AccountID *int64    `json:"accountId,omitempty"`
	StoryID   *int64    `json:"storyId,omitempty"`
	GroupID   *int64    `json:"groupId,omitempty"`
	ChapterID *int64    `json:"chapterId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCommentResponse maps a comment model to its API shape
func NewCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		AccountID: comment.AccountID,
		StoryID:   comment.StoryID,
		GroupID:   comment.GroupID,
		ChapterID: comment.ChapterID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentResponseList maps a page of comments
func NewCommentResponseList(comments []*models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}
	return responses
}

// CreateFollowRequest represents a new subscription. Exactly one target must
// be set.
type CreateFollowRequest struct {
	StoryID *int64 `json:"storyId,omitempty" binding:"omitempty,min=1"`
	GroupID *int64 `json:"groupId,omitempty" binding:"omitempty,min=1"`
}

// FollowResponse represents follow information as exposed over the API
type FollowResponse struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	StoryID   *int64    `json:"storyId,omitempty"`
	GroupID   *int64    `json:"groupId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFollowResponse maps a follow model to its API shape
func NewFollowResponse(follow *models.Follow) FollowResponse {
	return FollowResponse{
		ID:        follow.ID,
		AccountID: follow.AccountID,
		StoryID:   follow.StoryID,
		GroupID:   follow.GroupID,
		CreatedAt: follow.CreatedAt,
	}
}

// NewFollowResponseList maps a page of follows
func NewFollowResponseList(follows []*models.Follow) []FollowResponse {
	responses := make([]FollowResponse, 0, len(follows))
	for _, follow := range follows {
		responses = append(responses, NewFollowResponse(follow))
	}
	return responses
}

// NotificationResponse represents notification information as exposed over
// the API
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNotificationResponse maps a notification model to its API shape
func NewNotificationResponse(notification *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Type:      string(notification.Type),
		Content:   notification.Content,
		Link:      notification.Link,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

// NewNotificationResponseList maps a page of notifications
func NewNotificationResponseList(notifications []*models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}
	return responses
}

// CreateDonateRequest represents a new donation. Exactly one target must be
// set; the amount is a decimal string to keep currency exact.
type CreateDonateRequest struct {
	GroupID *int64          `json:"groupId,omitempty" binding:"omitempty,min=1"`
	StoryID *int64          `json:"storyId,omitempty" binding:"omitempty,min=1"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Message *string         `json:"message,omitempty" binding:"omitempty,max=500"`
}

// DonateResponse represents donation information as exposed over the API
type DonateResponse struct {
	ID        int64           `json:"id"`
	AccountID *int64          `json:"accountId,omitempty"`
	GroupID   *int64          `json:"groupId,omitempty"`
	StoryID   *int64          `json:"storyId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Message   *string         `json:"message,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewDonateResponse maps a donate model to its API shape
func NewDonateResponse(donate *models.Donate) DonateResponse {
	return DonateResponse{
		ID:        donate.ID,
		AccountID: donate.AccountID,
		GroupID:   donate.GroupID,
		StoryID:   donate.StoryID,
		Amount:    donate.Amount,
		Message:   donate.Message,
		CreatedAt: donate.CreatedAt,
	}
}

// NewDonateResponseList maps a page of donations
func NewDonateResponseList(donates []*models.Donate) []DonateResponse {
	responses := make([]DonateResponse, 0, len(donates))
	for _, donate := range donates {
		responses = append(responses, NewDonateResponse(donate))
	}
	return responses
}
