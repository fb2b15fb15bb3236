package feed

import (
	"context"

	"go-event-registry/internal/model"
	"go-event-registry/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.Notification
	Ack  func()
	Nack func(requeue bool)
}

// NotificationFeed 成功的狀態變更後發佈通知；worker 端訂閱後寫入只增表
type NotificationFeed interface {
	// 發佈通知
	Publish(ctx context.Context, notification *model.Notification) error
	// 訂閱通知
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type MemoryFeed struct {
	// 使用 Go channel 來模擬 MQ
	ch chan *model.Notification
}

func NewMemoryFeed(bufferSize int) NotificationFeed {
	return &MemoryFeed{
		ch: make(chan *model.Notification, bufferSize),
	}
}

func (f *MemoryFeed) Publish(ctx context.Context, notification *model.Notification) error {
	f.ch <- notification
	return nil
}

func (f *MemoryFeed) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notification, ok := <-f.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: notification,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if !requeue {
							return
						}
						// 非阻塞重回隊列：buffer 滿就丟棄，不能卡住 worker
						select {
						case f.ch <- notification:
						default:
							logger.WithComponent("feed").Warn("requeue dropped, buffer full",
								zap.String("notification_id", notification.ID.String()),
								zap.String("type", string(notification.Type)))
						}
					},
				}
			}
		}
	}()

	return out, nil
}
