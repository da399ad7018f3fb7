package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// HandleAPIError translates a service error into the matching HTTP response.
// Every controller funnels its errors through here so the wire shape stays
// uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid username or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountInactive):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountInactive, "Account is inactive")
	case errors.Is(err, apperrors.ErrRoleEscalation):
		respond(c, http.StatusForbidden, dto.ErrorCodeRoleEscalation, "Role cannot be escalated to admin")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodePermissionDenied, "Permission denied")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondDetail(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)
	case errors.Is(err, apperrors.ErrConflict):
		respondDetail(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource conflict", err)
	case errors.Is(err, apperrors.ErrNegativeAmount):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Amount cannot be negative")
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email format")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondDetail(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password", err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondDetail(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)
	case errors.Is(err, apperrors.ErrBadRequest):
		respondDetail(c, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Bad request", err)
	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// respondDetail carries the sentinel's wrapped text as details, which is
// where the specific resource or field name lives.
func respondDetail(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	detail := dto.NewErrorDetail(code, message).WithDetails(err.Error())
	c.JSON(status, dto.NewErrorResponse(detail))
}
