// Package seed creates the records the platform cannot run without.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/config"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/auth"
)

// CreateAdminAccount ensures the configured admin account exists. Called at
// startup after migrations; a second run is a no-op.
func CreateAdminAccount(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping admin account seed")
		return nil
	}

	accountRepo := repositories.NewAccountRepository(dbPool)

	if _, err := accountRepo.GetByUsername(ctx, cfg.Admin.Username); err == nil {
		lgr.Debug().Str("username", cfg.Admin.Username).Msg("Admin account already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Account{
		Username:     cfg.Admin.Username,
		PasswordHash: &hash,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	}
	if cfg.Admin.Email != "" {
		admin.Email = &cfg.Admin.Email
	}

	if err := accountRepo.Create(ctx, admin); err != nil {
		// Lost a race against another instance seeding the same account
		if errors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return err
	}

	lgr.Info().Str("username", admin.Username).Int64("accountID", admin.ID).Msg("Admin account created")
	return nil
}
