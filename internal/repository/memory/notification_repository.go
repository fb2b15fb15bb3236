package memory

import (
	"context"
	"sync"

	"go-event-registry/internal/model"
	"go-event-registry/internal/repository"
)

// NotificationRepository 記憶體版通知表，只增不改
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []*model.Notification
}

func NewNotificationRepository() repository.NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Append(ctx context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, limit int) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.notifications)
	if limit > 0 && limit < n {
		n = limit
	}
	notifications := make([]*model.Notification, 0, n)
	for _, item := range r.notifications[:n] {
		copied := *item
		notifications = append(notifications, &copied)
	}
	return notifications, nil
}
