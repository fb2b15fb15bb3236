package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-event-registry/internal/model"
	"go-event-registry/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "notifications:stream"
	ConsumerGroupName  = "notification-workers"
	ConsumerNamePrefix = "worker"
)

// RedisStreamFeedConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamFeedConfig struct {
	ClaimMinIdleTime   time.Duration // PEL 中超過此時間才被 XAUTOCLAIM 領取
	MaxRetryCount      int           // 超過此次數視為毒藥消息並丟棄
	ReadGroupBlockTime time.Duration // XReadGroup 阻塞時間
}

func defaultRedisStreamConfig() RedisStreamFeedConfig {
	return RedisStreamFeedConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
	}
}

type RedisStreamFeedImpl struct {
	client       *redis.Client
	streamKey    string
	groupName    string
	consumerName string
	cfg          RedisStreamFeedConfig
}

// NewRedisStreamFeed 建立 Redis Stream 版 NotificationFeed。config 可為 nil，則使用預設逾時與重試次數。
func NewRedisStreamFeed(client *redis.Client, consumerID string, config *RedisStreamFeedConfig) (NotificationFeed, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	cfg := defaultRedisStreamConfig()
	if config != nil {
		if config.ClaimMinIdleTime > 0 {
			cfg.ClaimMinIdleTime = config.ClaimMinIdleTime
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.ReadGroupBlockTime > 0 {
			cfg.ReadGroupBlockTime = config.ReadGroupBlockTime
		}
	}
	f := &RedisStreamFeedImpl{
		client:       client,
		streamKey:    StreamKey,
		groupName:    ConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", ConsumerNamePrefix, consumerID),
		cfg:          cfg,
	}
	ctx := context.Background()
	if err := f.ensureConsumerGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return f, nil
}

func (f *RedisStreamFeedImpl) ensureConsumerGroup(ctx context.Context) error {
	err := f.client.XGroupCreateMkStream(ctx, f.streamKey, f.groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (f *RedisStreamFeedImpl) Publish(ctx context.Context, notification *model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	_, err = f.client.XAdd(ctx, &redis.XAddArgs{
		Stream: f.streamKey,
		ID:     "*",
		Values: map[string]interface{}{"notification": string(payload)},
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (f *RedisStreamFeedImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		go f.runAutoClaim(ctx, out)
		f.runReadLoop(ctx, out)
	}()
	return out, nil
}

// runReadLoop 主讀取循環
func (f *RedisStreamFeedImpl) runReadLoop(ctx context.Context, out chan<- Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			f.readAndDeliver(ctx, out)
		}
	}
}

// readAndDeliver 執行一輪讀取並投遞到 out
// 只讀 ">"（新訊息）；Pending（"0"）的訊息已由本 consumer 領過、已投遞過，不再重複投遞，改由 XAUTOCLAIM 超時後領回重試。
func (f *RedisStreamFeedImpl) readAndDeliver(ctx context.Context, out chan<- Delivery) {
	streams, err := f.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    f.groupName,
		Consumer: f.consumerName,
		Streams:  []string{f.streamKey, ">"},
		Count:    10,
		Block:    f.cfg.ReadGroupBlockTime,
	}).Result()

	if err == redis.Nil {
		return
	}
	if err != nil {
		logger.WithComponent("feed").Error("XReadGroup failed", zap.Error(err))
		time.Sleep(time.Second)
		return
	}

	for _, stream := range streams {
		if stream.Stream != f.streamKey {
			continue
		}
		for _, msg := range stream.Messages {
			d := f.newDelivery(ctx, msg)
			if d != nil {
				select {
				case out <- *d:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// shouldProcessMessage 檢查是否應處理（含毒藥消息判斷）
func (f *RedisStreamFeedImpl) shouldProcessMessage(ctx context.Context, messageID string, isPending bool) bool {
	if !isPending {
		return true
	}
	n, err := f.getMessageRetryCount(ctx, messageID)
	if err != nil {
		logger.WithComponent("feed").Warn("getMessageRetryCount failed", zap.String("message_id", messageID), zap.Error(err))
		return true
	}
	if n >= f.cfg.MaxRetryCount {
		logger.WithComponent("feed").Warn("discard poison message", zap.String("message_id", messageID), zap.Int("retries", n), zap.Int("max_retries", f.cfg.MaxRetryCount))
		_ = f.client.XAck(ctx, f.streamKey, f.groupName, messageID).Err()
		return false
	}
	return true
}

func (f *RedisStreamFeedImpl) getMessageRetryCount(ctx context.Context, messageID string) (int, error) {
	pending, err := f.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: f.streamKey,
		Group:  f.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	return int(pending[0].RetryCount), nil
}

// runAutoClaim 定時用 XAUTOCLAIM 領取超時未處理的消息
func (f *RedisStreamFeedImpl) runAutoClaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(f.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			claimed, nextID, err := f.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   f.streamKey,
				Group:    f.groupName,
				Consumer: f.consumerName,
				MinIdle:  f.cfg.ClaimMinIdleTime,
				Count:    10,
				Start:    startID,
			}).Result()

			if err != nil && err != redis.Nil {
				logger.WithComponent("feed").Error("XAutoClaim failed", zap.Error(err))
				continue
			}
			if nextID != "" && nextID != "0-0" {
				startID = nextID
			} else {
				startID = "0-0"
			}

			for _, msg := range claimed {
				if !f.shouldProcessMessage(ctx, msg.ID, true) {
					continue
				}
				d := f.newDelivery(ctx, msg)
				if d != nil {
					select {
					case out <- *d:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}
}

// newDelivery 從 Redis 消息組裝 Delivery（含 Ack/Nack）
func (f *RedisStreamFeedImpl) newDelivery(ctx context.Context, msg redis.XMessage) *Delivery {
	payload, ok := msg.Values["notification"].(string)
	if !ok {
		logger.WithComponent("feed").Warn("invalid message: missing notification field", zap.String("message_id", msg.ID))
		return nil
	}
	var notification model.Notification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		logger.WithComponent("feed").Warn("unmarshal notification failed", zap.String("message_id", msg.ID), zap.Error(err))
		return nil
	}
	msgID := msg.ID
	return &Delivery{
		Data: &notification,
		Ack: func() {
			if err := f.client.XAck(ctx, f.streamKey, f.groupName, msgID).Err(); err != nil {
				logger.WithComponent("feed").Error("XAck failed", zap.String("message_id", msgID), zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if requeue {
				// 不做任何事：消息留在 PEL，等 ClaimMinIdleTime 後由 XAUTOCLAIM 領取，形成延遲重試
				logger.WithComponent("feed").Info("message nack(requeue), will retry", zap.String("message_id", msgID), zap.Duration("claim_min_idle", f.cfg.ClaimMinIdleTime))
				return
			}
			if err := f.client.XAck(ctx, f.streamKey, f.groupName, msgID).Err(); err != nil {
				logger.WithComponent("feed").Error("XAck discard failed", zap.String("message_id", msgID), zap.Error(err))
			}
		},
	}
}
