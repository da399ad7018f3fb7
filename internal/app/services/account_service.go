package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	authz "github.com/tranminh/mangareader/internal/app/auth"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/auth"
	"github.com/tranminh/mangareader/internal/pkg/helpers"
)

// AccountChanges is the allow-list of mutable account fields. Nil fields are
// left untouched; identifiers, timestamps and group membership are never
// patched through here.
type AccountChanges struct {
	Email    *string
	Password *string
	Role     *models.Role
	Status   *models.AccountStatus
}

// AccountService manages account profiles and lifecycle
type AccountService struct {
	accountRepo repositories.IAccountRepository
	authService *AuthService
	logger      zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo repositories.IAccountRepository, authService *AuthService, logger zerolog.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		authService: authService,
		logger:      logger,
	}
}

// Get returns the account with the given ID
func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// List returns a page of accounts, admin only
func (s *AccountService) List(ctx context.Context, actor *models.Account, offset, limit int) ([]*models.Account, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.accountRepo.List(ctx, offset, limit)
}

// ReadSafe returns the account with the email hidden unless the actor is the
// owner or an admin. A nil actor is an anonymous reader.
func (s *AccountService) ReadSafe(ctx context.Context, actor *models.Account, id int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanSeeEmail(actor, account.ID) {
		account.Email = nil
	}
	return account, nil
}

// ReadSafeByUsername is ReadSafe keyed by username instead of ID
func (s *AccountService) ReadSafeByUsername(ctx context.Context, actor *models.Account, username string) (*models.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !authz.CanSeeEmail(actor, account.ID) {
		account.Email = nil
	}
	return account, nil
}

// Update applies the given changes to the target account. Only the owner or
// an admin may mutate; escalation to the admin role is always rejected.
func (s *AccountService) Update(ctx context.Context, actor *models.Account, id int64, changes AccountChanges) (*models.Account, error) {
	if !authz.CanActOnAccount(actor, id) {
		return nil, apperrors.ErrPermissionDenied
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Email != nil {
		if err := s.authService.ValidateEmail(*changes.Email); err != nil {
			return nil, err
		}
		account.Email = changes.Email
	}

	if changes.Password != nil {
		if err := s.authService.ValidatePassword(*changes.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*changes.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		account.PasswordHash = &hash
	}

	if changes.Role != nil {
		if *changes.Role == models.RoleAdmin {
			return nil, apperrors.ErrRoleEscalation
		}
		if !actor.IsAdmin() {
			return nil, apperrors.ErrPermissionDenied
		}
		account.Role = *changes.Role
	}

	if changes.Status != nil {
		if !actor.IsAdmin() {
			return nil, apperrors.ErrPermissionDenied
		}
		account.Status = *changes.Status
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("accountID", account.ID).
		Int64("actorID", actor.ID).
		Msg("Account updated")

	return account, nil
}

// Anonymize strips personal data from the account: the username becomes a
// placeholder derived from the ID, email and password hash are cleared, and
// the status is set to anonymized. Applying it twice is a no-op.
func (s *AccountService) Anonymize(ctx context.Context, actor *models.Account, id int64) (*models.Account, error) {
	if !authz.CanActOnAccount(actor, id) {
		return nil, apperrors.ErrPermissionDenied
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.Status == models.StatusAnonymized {
		return account, nil
	}

	account.Username = models.AnonymousUsername(account.ID)
	account.Email = nil
	account.PasswordHash = nil
	account.Status = models.StatusAnonymized

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accountID", account.ID).Msg("Account anonymized")

	return account, nil
}

// Delete removes the account. Follows and notifications go with it; comments
// and donates survive with the author detached.
func (s *AccountService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	if !authz.CanActOnAccount(actor, id) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("accountID", id).
		Int64("actorID", actor.ID).
		Msg("Account deleted")

	return nil
}
