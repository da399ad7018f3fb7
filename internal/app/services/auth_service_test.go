package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories/memory"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/auth"
)

func newTestAuthService(store *memory.Store) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Minute,
		TokenIssuer:    "test.issuer",
	})
	return NewAuthService(store.Accounts(), jwtService, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(memory.NewStore())

	account, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	assert.NotZero(t, account.ID)
	assert.Equal(t, "reader", account.Username)
	assert.Equal(t, models.RoleUser, account.Role)
	assert.Equal(t, models.StatusActive, account.Status)
	require.NotNil(t, account.PasswordHash)
	assert.NotEqual(t, "password1", *account.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(memory.NewStore())

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"short username", "ab", "a@example.com", "password1", apperrors.ErrValidationFailed},
		{"bad email", "reader", "not-an-email", "password1", apperrors.ErrInvalidEmail},
		{"short password", "reader", "a@example.com", "short", apperrors.ErrInvalidPassword},
		{"digits only password", "reader", "a@example.com", "12345678", apperrors.ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(memory.NewStore())

	_, err := svc.Register(ctx, "reader", "first@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "reader", "second@example.com", "password1")
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(memory.NewStore())

	_, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other", "reader@example.com", "password1")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestAuthService(store)

	registered, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	token, expiresIn, err := svc.Login(ctx, "reader", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 60, expiresIn)

	resolved, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
}

func TestLogin_WrongCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(memory.NewStore())

	_, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	// Unknown username and wrong password are indistinguishable
	_, _, err = svc.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "reader", "wrongpass1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestAuthService(store)

	account, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	account.Status = models.StatusInactive
	require.NoError(t, store.Accounts().Update(ctx, account))

	_, _, err = svc.Login(ctx, "reader", "password1")
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
}

func TestLogin_BannedAccountMayAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestAuthService(store)

	account, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	account.Status = models.StatusBanned
	require.NoError(t, store.Accounts().Update(ctx, account))

	// Only inactive blocks login; banned is enforced at the feature level
	_, _, err = svc.Login(ctx, "reader", "password1")
	assert.NoError(t, err)
}

func TestResolveSession_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestAuthService(store)

	account, err := svc.Register(ctx, "reader", "reader@example.com", "password1")
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "reader", "password1")
	require.NoError(t, err)

	account.Status = models.StatusInactive
	require.NoError(t, store.Accounts().Update(ctx, account))

	_, err = svc.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestResolveSession_BadToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(memory.NewStore())

	_, err := svc.ResolveSession(ctx, "not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
