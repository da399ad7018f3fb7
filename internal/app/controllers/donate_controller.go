package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/middleware"
)

// DonateController handles donation operations
type DonateController struct {
	donateService *services.DonateService
}

// NewDonateController creates a new DonateController
func NewDonateController(donateService *services.DonateService) *DonateController {
	return &DonateController{donateService: donateService}
}

// Create handles recording a donation
// @Summary Donate
// @Description Records a donation to exactly one of a group or story; a group donation notifies the group's leader
// @Tags donates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDonateRequest true "Donation data"
// @Success 201 {object} dto.DonateResponse
// @Failure 400 {object} dto.ErrorResponse "Negative amount or bad target"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Router /donates [post]
func (c *DonateController) Create(ctx *gin.Context) {
	var req dto.CreateDonateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	donate, err := c.donateService.Create(ctx.Request.Context(), middleware.CurrentAccount(ctx),
		services.DonateTarget{GroupID: req.GroupID, StoryID: req.StoryID},
		req.Amount, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDonateResponse(donate))
}

// ListByGroup handles listing a group's donations
// @Summary List group donations
// @Tags donates
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} dto.DonateResponse
// @Router /groups/{id}/donates [get]
func (c *DonateController) ListByGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := bindPagination(ctx)

	donates, err := c.donateService.ListByGroup(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDonateResponseList(donates))
}

// ListByStory handles listing a story's donations
// @Summary List story donations
// @Tags donates
// @Produce json
// @Param id path int true "Story ID"
// @Success 200 {array} dto.DonateResponse
// @Router /stories/{id}/donates [get]
func (c *DonateController) ListByStory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := bindPagination(ctx)

	donates, err := c.donateService.ListByStory(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDonateResponseList(donates))
}
