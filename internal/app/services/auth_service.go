package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

// AuthService handles registration, authentication and session resolution
type AuthService struct {
	accountRepo repositories.IAccountRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo repositories.IAccountRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// ValidateUsername checks username requirements
func (s *AuthService) ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return fmt.Errorf("%w: username must be between 3 and 50 characters", apperrors.ErrValidationFailed)
	}
	return nil
}

// ValidateEmail checks email format
func (s *AuthService) ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(strings.ToLower(email)) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks if password meets requirements
func (s *AuthService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}
	if len(password) > 128 {
		return fmt.Errorf("%w: password must be at most 128 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}

	return nil
}

// Register creates a new account with role user and status active.
// Plaintext passwords never reach the store; only the bcrypt hash does.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.Account, error) {
	if err := s.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := s.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username:     strings.TrimSpace(username),
		Email:        &email,
		PasswordHash: &hash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("accountID", account.ID).
		Str("username", account.Username).
		Msg("Account registered")

	return account, nil
}

// Login authenticates a username/password pair and issues an access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (token string, expiresIn int, err error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("error loading account: %w", err)
	}

	// Anonymized accounts have no hash left to verify against
	if account.PasswordHash == nil || !auth.CheckPassword(*account.PasswordHash, password) {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	if account.Status == models.StatusInactive {
		return "", 0, apperrors.ErrAccountInactive
	}

	token, expiresIn, err = s.jwtService.GenerateToken(account.ID)
	if err != nil {
		return "", 0, fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Debug().Int64("accountID", account.ID).Msg("Login succeeded")

	return token, expiresIn, nil
}

// ResolveSession turns a bearer token into the acting account. An invalid or
// expired token is Unauthorized; a missing or inactive account is NotFound.
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (*models.Account, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	if account.Status == models.StatusInactive {
		return nil, apperrors.ErrAccountNotFound
	}

	return account, nil
}
