package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/dberrors"
)

// IAccountRepository defines the interface for account-related database operations
type IAccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context, offset, limit int) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id int64) error

	// GetGroupLeader returns the account leading the given group.
	GetGroupLeader(ctx context.Context, groupID int64) (*models.Account, error)
}

// AccountRepository handles account database operations
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, email, password_hash, role, status, group_id, group_role, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.Role, &account.Status, &account.GroupID, &account.GroupRole,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Create inserts a new account and fills in its generated id and timestamps.
// A username or email collision surfaces as a Conflict sentinel.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (username, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		account.Username, account.Email, account.PasswordHash, account.Role, account.Status).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if translated := translateAccountConflict(err); translated != nil {
			return translated
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error getting account: %w", err)
	}

	return account, nil
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE username = $1`, username))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error getting account by username: %w", err)
	}

	return account, nil
}

// List retrieves a page of accounts ordered by ID
func (r *AccountRepository) List(ctx context.Context, offset, limit int) ([]*models.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY id
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update persists every mutable account field. The service layer decides
// which fields may change; this is a plain row write.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET username = $1, email = $2, password_hash = $3, role = $4, status = $5,
		    group_id = $6, group_role = $7, updated_at = NOW()
		WHERE id = $8`,
		account.Username, account.Email, account.PasswordHash, account.Role, account.Status,
		account.GroupID, account.GroupRole, account.ID)

	if err != nil {
		if translated := translateAccountConflict(err); translated != nil {
			return translated
		}
		return fmt.Errorf("error updating account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// Delete hard-removes an account. Follows and notifications go with it via
// foreign keys; comments and donates keep their rows with the author nulled.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// GetGroupLeader retrieves the account holding the leader role of a group
func (r *AccountRepository) GetGroupLeader(ctx context.Context, groupID int64) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE group_id = $1 AND group_role = $2`, groupID, models.GroupRoleLeader))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error getting group leader: %w", err)
	}

	return account, nil
}

// translateAccountConflict maps unique-violation errors onto account
// conflict sentinels, or nil when the error is something else.
func translateAccountConflict(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "accounts_username_key"):
		return apperrors.ErrUsernameAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "accounts_email_key"):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrConflict
	}
	return nil
}
