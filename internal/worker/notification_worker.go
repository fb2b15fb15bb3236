package worker

import (
	"context"

	"go-event-registry/internal/feed"
	"go-event-registry/internal/repository"
	"go-event-registry/pkg/logger"

	"go.uber.org/zap"
)

// NotificationWorker 訂閱通知 feed，把每筆通知寫入只增的 notifications 表
type NotificationWorker interface {
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	repo repository.NotificationRepository
	feed feed.NotificationFeed
}

func NewNotificationWorker(repo repository.NotificationRepository, feed feed.NotificationFeed) NotificationWorker {
	return &NotificationWorkerImpl{
		repo: repo,
		feed: feed,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.feed.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.repo.Append(ctx, msg.Data)
			if err != nil {
				logger.WithComponent("worker").Error("append notification failed", zap.String("notification_id", msg.Data.ID.String()), zap.Error(err))
				// 資料庫暫時寫不進去就重試
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
