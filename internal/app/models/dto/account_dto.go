package dto

import (
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
)

// AccountResponse represents account information as exposed over the API.
// Email is omitted unless the viewer is the owner or an admin.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	GroupID   *int64    `json:"groupId,omitempty"`
	GroupRole *string   `json:"groupRole,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAccountResponse maps an account model to its API shape
func NewAccountResponse(account *models.Account) AccountResponse {
	resp := AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      string(account.Role),
		Status:    string(account.Status),
		GroupID:   account.GroupID,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if account.GroupRole != nil {
		role := string(*account.GroupRole)
		resp.GroupRole = &role
	}
	return resp
}

// NewAccountResponseList maps a page of accounts
func NewAccountResponseList(accounts []*models.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, NewAccountResponse(account))
	}
	return responses
}

// UpdateAccountRequest represents a partial account update. Absent fields are
// left unchanged.
type UpdateAccountRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=user team admin"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive anonymized banned"`
}
