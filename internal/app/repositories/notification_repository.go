package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// INotificationRepository defines the interface for notification-related database operations
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, accountID int64) error
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, account_id, type, content, link, is_read, created_at`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(&n.ID, &n.AccountID, &n.Type, &n.Content, &n.Link, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (account_id, type, content, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		notification.AccountID, notification.Type, notification.Content, notification.Link).
		Scan(&notification.ID, &notification.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// CreateBatch inserts a set of notifications (fan-out)
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(`
			INSERT INTO notifications (account_id, type, content, link)
			VALUES ($1, $2, $3, $4)`,
			n.AccountID, n.Type, n.Content, n.Link)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error creating notifications: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error getting notification: %w", err)
	}

	return n, nil
}

// ListByAccount retrieves an account's notifications, newest first
func (r *NotificationRepository) ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE account_id = $1
		ORDER BY id DESC
		OFFSET $2 LIMIT $3`, accountID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every notification of an account as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, accountID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}
