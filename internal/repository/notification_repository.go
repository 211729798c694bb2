package repository

import (
	"context"

	"community-pulse/internal/model"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListUnreadByUserID(ctx context.Context, userID int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
}

type NotificationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &NotificationRepositoryImpl{
		pool: pool,
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	query := `
		INSERT INTO notifications (event_id, user_id, title, message, notification_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, user_id, title, message, notification_type, is_read, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		n.EventID, n.UserID, n.Title, n.Message, n.Type,
	).Scan(
		&n.ID,
		&n.EventID,
		&n.UserID,
		&n.Title,
		&n.Message,
		&n.Type,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return n, nil
}

func (r *NotificationRepositoryImpl) ListUnreadByUserID(ctx context.Context, userID int) ([]*model.Notification, error) {
	query := `
		SELECT id, event_id, user_id, title, message, notification_type, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID,
			&n.EventID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id, userID int) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}
