package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/db"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/dberrors"
)

// IGroupRepository defines the interface for group-related database operations
type IGroupRepository interface {
	// CreateWithLeader inserts the group and promotes the leader account in
	// one transaction; both succeed or neither does.
	CreateWithLeader(ctx context.Context, group *models.Group, leaderID int64) error
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context, offset, limit int) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	// Delete removes the group, cascading to chapters, donates and story
	// associations; member accounts are detached, not deleted.
	Delete(ctx context.Context, id int64) error
}

// GroupRepository handles group database operations
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `id, name, description, avatar, created_at, updated_at`

func scanGroup(row pgx.Row) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.Description, &group.Avatar,
		&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// CreateWithLeader creates a group and assigns the creating account as its leader
func (r *GroupRepository) CreateWithLeader(ctx context.Context, group *models.Group, leaderID int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO groups (name, description, avatar)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			group.Name, group.Description, group.Avatar).
			Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE accounts
			SET group_id = $1, group_role = $2, updated_at = NOW()
			WHERE id = $3`,
			group.ID, models.GroupRoleLeader, leaderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrAccountNotFound
		}

		return nil
	})

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrGroupAlreadyExists
		}
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("error creating group: %w", err)
	}

	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	group, err := scanGroup(r.db.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM groups
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error getting group: %w", err)
	}

	return group, nil
}

// List retrieves groups in creation order with offset/limit pagination
func (r *GroupRepository) List(ctx context.Context, offset, limit int) ([]*models.Group, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+groupColumns+`
		FROM groups
		ORDER BY id
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// Update persists group description and avatar. Name is immutable after
// creation and deliberately absent here.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE groups
		SET description = $1, avatar = $2, updated_at = NOW()
		WHERE id = $3`,
		group.Description, group.Avatar, group.ID)

	if err != nil {
		return fmt.Errorf("error updating group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// Delete removes a group. Chapters, group donates and story associations are
// removed by foreign keys; members are detached first so their group role
// clears along with the reference.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE accounts
			SET group_id = NULL, group_role = NULL, updated_at = NOW()
			WHERE group_id = $1`, id)
		if err != nil {
			return fmt.Errorf("error detaching group members: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting group: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrGroupNotFound
		}

		return nil
	})
}
