package dto

import (
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
)

// CreateGroupRequest represents a new translation group. The creating
// account takes the leader seat; there is no way to hand it to someone else
// at creation time.
type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// UpdateGroupRequest represents group profile changes. The name is immutable.
type UpdateGroupRequest struct {
	Description *string `json:"description,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// AddMemberRequest represents adding an account to a group
type AddMemberRequest struct {
	AccountID int64 `json:"accountId" binding:"required,min=1"`
}

// GroupResponse represents group information as exposed over the API
type GroupResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewGroupResponse maps a group model to its API shape
func NewGroupResponse(group *models.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Avatar:      group.Avatar,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

// NewGroupResponseList maps a page of groups
func NewGroupResponseList(groups []*models.Group) []GroupResponse {
	responses := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, NewGroupResponse(group))
	}
	return responses
}
