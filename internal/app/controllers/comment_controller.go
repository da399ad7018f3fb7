package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/middleware"
)

// CommentController handles comment operations
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Create handles posting a comment
// @Summary Create comment
// @Description Posts a comment on exactly one of a story, group or chapter
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommentRequest true "Comment data"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} dto.ErrorResponse "Zero or multiple targets"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Router /comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	comment, err := c.commentService.Create(ctx.Request.Context(), middleware.CurrentAccount(ctx),
		services.CommentTarget{StoryID: req.StoryID, GroupID: req.GroupID, ChapterID: req.ChapterID},
		req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// ListByStory handles listing a story's comments
// @Summary List story comments
// @Tags comments
// @Produce json
// @Param id path int true "Story ID"
// @Success 200 {array} dto.CommentResponse
// @Router /stories/{id}/comments [get]
func (c *CommentController) ListByStory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := bindPagination(ctx)

	comments, err := c.commentService.ListByStory(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCommentResponseList(comments))
}

// ListByGroup handles listing a group's comments
// @Summary List group comments
// @Tags comments
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} dto.CommentResponse
// @Router /groups/{id}/comments [get]
func (c *CommentController) ListByGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := bindPagination(ctx)

	comments, err := c.commentService.ListByGroup(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCommentResponseList(comments))
}

// ListByChapter handles listing a chapter's comments
// @Summary List chapter comments
// @Tags comments
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {array} dto.CommentResponse
// @Router /chapters/{id}/comments [get]
func (c *CommentController) ListByChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := bindPagination(ctx)

	comments, err := c.commentService.ListByChapter(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCommentResponseList(comments))
}

// Delete handles comment removal, author or admin
// @Summary Delete comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not author or admin"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.commentService.Delete(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Comment deleted"})
}
