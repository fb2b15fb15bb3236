package repository

import (
	"context"

	"go-event-registry/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository 只增不改的通知表
type NotificationRepository interface {
	Append(ctx context.Context, notification *model.Notification) error
	List(ctx context.Context, limit int) ([]*model.Notification, error)
}

type NotificationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &NotificationRepositoryImpl{
		pool: pool,
	}
}

func (r *NotificationRepositoryImpl) Append(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (id, type, caller, event_id, name, description, field, username, setting, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		notification.ID,
		notification.Type,
		notification.Caller,
		notification.EventID,
		notification.Name,
		notification.Description,
		notification.Field,
		notification.Username,
		notification.Setting,
		notification.Value,
		notification.CreatedAt,
	)
	return err
}

func (r *NotificationRepositoryImpl) List(ctx context.Context, limit int) ([]*model.Notification, error) {
	query := `
		SELECT id, type, caller, event_id, name, description, field, username, setting, value, created_at
		FROM notifications
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Caller,
			&n.EventID,
			&n.Name,
			&n.Description,
			&n.Field,
			&n.Username,
			&n.Setting,
			&n.Value,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}
