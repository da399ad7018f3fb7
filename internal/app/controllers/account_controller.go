package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/middleware"
)

// AccountController handles account profile operations
type AccountController struct {
	accountService *services.AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService *services.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// List handles listing accounts, admin only
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param offset query int false "Page offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Router /accounts [get]
func (c *AccountController) List(ctx *gin.Context) {
	offset, limit := bindPagination(ctx)

	accounts, err := c.accountService.List(ctx.Request.Context(), middleware.CurrentAccount(ctx), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAccountResponseList(accounts))
}

// Get handles reading a single account profile. The email is only present
// when the viewer is the owner or an admin.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{id} [get]
func (c *AccountController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	account, err := c.accountService.ReadSafe(ctx.Request.Context(), middleware.CurrentAccount(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// GetByUsername handles profile lookup by username, with the same email
// visibility rules as Get.
// @Summary Get account by username
// @Tags accounts
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/username/{username} [get]
func (c *AccountController) GetByUsername(ctx *gin.Context) {
	username := ctx.Param("username")

	account, err := c.accountService.ReadSafeByUsername(ctx.Request.Context(), middleware.CurrentAccount(ctx), username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// Update handles partial account updates
// @Summary Update account
// @Description Applies the provided fields; role and status changes are admin territory, and no one can assign the admin role
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} dto.ErrorResponse "Not owner or admin, or role escalation"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Router /accounts/{id} [patch]
func (c *AccountController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	changes := services.AccountChanges{
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		changes.Role = &role
	}
	if req.Status != nil {
		status := models.AccountStatus(*req.Status)
		changes.Status = &status
	}

	account, err := c.accountService.Update(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, changes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// Anonymize handles scrubbing personal data from an account
// @Summary Anonymize account
// @Description Replaces the username with a placeholder and clears email and password; idempotent
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} dto.ErrorResponse "Not owner or admin"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{id}/anonymize [post]
func (c *AccountController) Anonymize(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	account, err := c.accountService.Anonymize(ctx.Request.Context(), middleware.CurrentAccount(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// Delete handles account removal
// @Summary Delete account
// @Description Removes the account; follows and notifications go with it, comments and donations are kept with the author detached
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not owner or admin"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{id} [delete]
func (c *AccountController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.accountService.Delete(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Account deleted"})
}
