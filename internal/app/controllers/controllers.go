// Package controllers translates HTTP requests into service calls and
// service results into JSON. No business rules live here.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models/dto"
)

// parseIDParam reads a path parameter as an int64 ID. On failure it writes
// the 400 response itself and reports ok=false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// bindPagination reads the offset/limit query parameters, falling back to
// defaults on bad input. Out-of-range values are clamped by the services.
func bindPagination(ctx *gin.Context) (offset, limit int) {
	var query dto.PaginationQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return 0, 0
	}
	return query.Offset, query.Limit
}

// bindJSON binds the request body, writing the 400 response on failure
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}
