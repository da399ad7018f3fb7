package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/middleware"
)

// FollowController handles subscription operations
type FollowController struct {
	followService *services.FollowService
}

// NewFollowController creates a new FollowController
func NewFollowController(followService *services.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// Create handles subscribing to a story or group
// @Summary Follow a story or group
// @Tags follows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFollowRequest true "Target to follow"
// @Success 201 {object} dto.FollowResponse
// @Failure 400 {object} dto.ErrorResponse "Zero or multiple targets"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Failure 409 {object} dto.ErrorResponse "Already following"
// @Router /follows [post]
func (c *FollowController) Create(ctx *gin.Context) {
	var req dto.CreateFollowRequest
	if !bindJSON(ctx, &req) {
		return
	}

	follow, err := c.followService.Create(ctx.Request.Context(), middleware.CurrentAccount(ctx),
		services.FollowTarget{StoryID: req.StoryID, GroupID: req.GroupID})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewFollowResponse(follow))
}

// List handles listing the actor's own follows
// @Summary List own follows
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param offset query int false "Page offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.FollowResponse
// @Router /follows [get]
func (c *FollowController) List(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	offset, limit := bindPagination(ctx)

	follows, err := c.followService.ListByAccount(ctx.Request.Context(), actor, actor.ID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewFollowResponseList(follows))
}

// Delete handles unsubscribing
// @Summary Unfollow
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "Follow ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not owner or admin"
// @Failure 404 {object} dto.ErrorResponse "Follow not found"
// @Router /follows/{id} [delete]
func (c *FollowController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.followService.Delete(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Unfollowed"})
}
