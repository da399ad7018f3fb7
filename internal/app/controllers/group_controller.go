package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/middleware"
)

// GroupController handles translation group operations
type GroupController struct {
	groupService *services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService *services.GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// Create handles group creation, admin only
// @Summary Create group
// @Description Creates a translation group; the creating account becomes its leader
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group data"
// @Success 201 {object} dto.GroupResponse
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 409 {object} dto.ErrorResponse "Name taken or creator already in a group"
// @Router /groups [post]
func (c *GroupController) Create(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.Create(ctx.Request.Context(), middleware.CurrentAccount(ctx),
		req.Name, req.Description, req.Avatar)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewGroupResponse(group))
}

// List handles listing groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Param offset query int false "Page offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.GroupResponse
// @Router /groups [get]
func (c *GroupController) List(ctx *gin.Context) {
	offset, limit := bindPagination(ctx)

	groups, err := c.groupService.List(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewGroupResponseList(groups))
}

// Get handles reading a single group
// @Summary Get group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	group, err := c.groupService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewGroupResponse(group))
}

// Update handles group profile changes, admin or leader
// @Summary Update group
// @Description Changes description and avatar; the name is immutable
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Fields to change"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or leader"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [patch]
func (c *GroupController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.Update(ctx.Request.Context(), middleware.CurrentAccount(ctx), id,
		services.GroupChanges{Description: req.Description, Avatar: req.Avatar})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewGroupResponse(group))
}

// Delete handles group removal, admin or leader
// @Summary Delete group
// @Description Removes the group with its chapters, donations and story assignments; member accounts are detached
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or leader"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [delete]
func (c *GroupController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.groupService.Delete(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Group deleted"})
}

// AddMember handles attaching an account to the group
// @Summary Add group member
// @Description Adds an account as a regular member; an account already in another group is a conflict
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.AddMemberRequest true "Account to add"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or leader"
// @Failure 404 {object} dto.ErrorResponse "Group or account not found"
// @Failure 409 {object} dto.ErrorResponse "Account already in a group"
// @Router /groups/{id}/members [post]
func (c *GroupController) AddMember(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.groupService.AddMember(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, req.AccountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Member added"})
}

// RemoveMember handles detaching an account from the group
// @Summary Remove group member
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param accountId path int true "Account ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or leader"
// @Failure 404 {object} dto.ErrorResponse "Group or account not found"
// @Router /groups/{id}/members/{accountId} [delete]
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	accountID, ok := parseIDParam(ctx, "accountId")
	if !ok {
		return
	}

	if err := c.groupService.RemoveMember(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, accountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Member removed"})
}
