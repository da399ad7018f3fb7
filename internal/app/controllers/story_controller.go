package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/middleware"
)

// StoryController handles story, chapter and assignment operations
type StoryController struct {
	storyService *services.StoryService
}

// NewStoryController creates a new StoryController
func NewStoryController(storyService *services.StoryService) *StoryController {
	return &StoryController{storyService: storyService}
}

// Create handles story submission
// @Summary Create story
// @Description Submits a new story; it stays pending until an admin approves it
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoryRequest true "Story data"
// @Success 201 {object} dto.StoryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /stories [post]
func (c *StoryController) Create(ctx *gin.Context) {
	var req dto.CreateStoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	story, err := c.storyService.Create(ctx.Request.Context(), middleware.CurrentAccount(ctx),
		req.Title, req.Description, req.Tags, req.Author)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStoryResponse(story))
}

// List handles listing stories
// @Summary List stories
// @Tags stories
// @Produce json
// @Param offset query int false "Page offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.StoryResponse
// @Router /stories [get]
func (c *StoryController) List(ctx *gin.Context) {
	offset, limit := bindPagination(ctx)

	stories, err := c.storyService.List(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStoryResponseList(stories))
}

// Get handles reading a single story
// @Summary Get story
// @Tags stories
// @Produce json
// @Param id path int true "Story ID"
// @Success 200 {object} dto.StoryResponse
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /stories/{id} [get]
func (c *StoryController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	story, err := c.storyService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStoryResponse(story))
}

// Update handles story metadata changes, creator or admin
// @Summary Update story
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Param request body dto.UpdateStoryRequest true "Fields to change"
// @Success 200 {object} dto.StoryResponse
// @Failure 403 {object} dto.ErrorResponse "Not creator or admin"
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /stories/{id} [patch]
func (c *StoryController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	story, err := c.storyService.Update(ctx.Request.Context(), middleware.CurrentAccount(ctx), id,
		services.StoryChanges{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
			Author:      req.Author,
		})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStoryResponse(story))
}

// SetApproval handles story moderation, admin only
// @Summary Set story approval
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Param request body dto.SetApprovalRequest true "Moderation decision"
// @Success 200 {object} dto.StoryResponse
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /stories/{id}/approval [put]
func (c *StoryController) SetApproval(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetApprovalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	story, err := c.storyService.SetApproval(ctx.Request.Context(), middleware.CurrentAccount(ctx), id,
		models.ApprovalStatus(req.Approval))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStoryResponse(story))
}

// Delete handles story removal, creator or admin
// @Summary Delete story
// @Description Removes the story with its chapters, comments, follows, donations and group assignments
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not creator or admin"
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /stories/{id} [delete]
func (c *StoryController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.storyService.Delete(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Story deleted"})
}

// AssignGroup handles giving a group working rights on a story
// @Summary Assign group to story
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Param request body dto.AssignGroupRequest true "Group to assign"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or group leader"
// @Failure 404 {object} dto.ErrorResponse "Story or group not found"
// @Failure 409 {object} dto.ErrorResponse "Group already assigned"
// @Router /stories/{id}/groups [post]
func (c *StoryController) AssignGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignGroupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.storyService.AssignGroup(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, req.GroupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Group assigned"})
}

// UnassignGroup handles removing a group's working rights on a story
// @Summary Unassign group from story
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or group leader"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /stories/{id}/groups/{groupId} [delete]
func (c *StoryController) UnassignGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	if err := c.storyService.UnassignGroup(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Group unassigned"})
}

// CreateChapter handles chapter publication by an assigned group
// @Summary Create chapter
// @Description Publishes a chapter on behalf of a group assigned to the story; followers are notified
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Param request body dto.CreateChapterRequest true "Chapter data"
// @Success 201 {object} dto.ChapterResponse
// @Failure 400 {object} dto.ErrorResponse "Group not assigned to the story"
// @Failure 403 {object} dto.ErrorResponse "Not admin or group leader"
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /stories/{id}/chapters [post]
func (c *StoryController) CreateChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateChapterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	chapter, err := c.storyService.CreateChapter(ctx.Request.Context(), middleware.CurrentAccount(ctx),
		id, req.GroupID, req.Number, req.Title, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewChapterResponse(chapter))
}

// ListChapters handles listing a story's chapters in reading order
// @Summary List chapters
// @Tags chapters
// @Produce json
// @Param id path int true "Story ID"
// @Param offset query int false "Page offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.ChapterResponse
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /stories/{id}/chapters [get]
func (c *StoryController) ListChapters(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := bindPagination(ctx)

	chapters, err := c.storyService.ListChapters(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewChapterResponseList(chapters))
}

// GetChapter handles reading a single chapter
// @Summary Get chapter
// @Tags chapters
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.ChapterResponse
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id} [get]
func (c *StoryController) GetChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	chapter, err := c.storyService.GetChapter(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewChapterResponse(chapter))
}

// UpdateChapter handles chapter changes, admin or publishing group's leader
// @Summary Update chapter
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param request body dto.UpdateChapterRequest true "Fields to change"
// @Success 200 {object} dto.ChapterResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or group leader"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id} [patch]
func (c *StoryController) UpdateChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateChapterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	chapter, err := c.storyService.UpdateChapter(ctx.Request.Context(), middleware.CurrentAccount(ctx), id,
		services.ChapterChanges{Number: req.Number, Title: req.Title, Content: req.Content})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewChapterResponse(chapter))
}

// SetChapterApproval handles chapter moderation, admin only
// @Summary Set chapter approval
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param request body dto.SetApprovalRequest true "Moderation decision"
// @Success 200 {object} dto.ChapterResponse
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id}/approval [put]
func (c *StoryController) SetChapterApproval(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetApprovalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	chapter, err := c.storyService.SetChapterApproval(ctx.Request.Context(), middleware.CurrentAccount(ctx), id,
		models.ApprovalStatus(req.Approval))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewChapterResponse(chapter))
}

// DeleteChapter handles chapter removal, admin or publishing group's leader
// @Summary Delete chapter
// @Tags chapters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not admin or group leader"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id} [delete]
func (c *StoryController) DeleteChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.storyService.DeleteChapter(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Chapter deleted"})
}
