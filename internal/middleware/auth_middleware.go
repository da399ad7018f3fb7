package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/models/dto"
	"github.com/tranminh/mangareader/internal/app/services"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/auth"
)

const accountContextKey = "account"

// AuthMiddleware resolves bearer tokens into acting accounts
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (*models.Account, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	return m.authService.ResolveSession(c.Request.Context(), tokenString)
}

// JWTAuth requires a valid bearer token and stores the resolved account in
// the request context. Tokens for missing or inactive accounts are rejected.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := m.resolve(c)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Authentication required"
			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				code = dto.ErrorCodeExpiredToken
				message = "Token has expired"
			case errors.Is(err, apperrors.ErrAccountNotFound):
				code = dto.ErrorCodeUnauthorized
				message = "Account no longer available"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

// OptionalJWTAuth resolves the account when a token is present and proceeds
// anonymously when it is not. A token that is present but invalid is still
// rejected.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		account, err := m.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

// CurrentAccount returns the account resolved by JWTAuth, or nil for an
// anonymous request.
func CurrentAccount(c *gin.Context) *models.Account {
	value, exists := c.Get(accountContextKey)
	if !exists {
		return nil
	}
	account, ok := value.(*models.Account)
	if !ok {
		return nil
	}
	return account
}
