package worker_test

import (
	"context"
	"testing"
	"time"

	"go-event-registry/internal/feed"
	"go-event-registry/internal/model"
	"go-event-registry/internal/repository/memory"
	"go-event-registry/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationWorker_Start(t *testing.T) {
	t.Run("Success - published notifications end up in the append-only table", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := memory.NewNotificationRepository()
		notificationFeed := feed.NewMemoryFeed(8)

		w := worker.NewNotificationWorker(repo, notificationFeed)
		require.NoError(t, w.Start(ctx))

		first := model.NewEventNotification("alice", 1, "test", "This is a test")
		second := model.EventClosedNotification("alice", 1, "test")
		require.NoError(t, notificationFeed.Publish(ctx, first))
		require.NoError(t, notificationFeed.Publish(ctx, second))

		require.Eventually(t, func() bool {
			stored, err := repo.List(ctx, 10)
			return err == nil && len(stored) == 2
		}, 2*time.Second, 10*time.Millisecond)

		stored, err := repo.List(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, first.ID, stored[0].ID)
		assert.Equal(t, model.NotificationNewEvent, stored[0].Type)
		assert.Equal(t, second.ID, stored[1].ID)
		assert.Equal(t, model.NotificationEventClosed, stored[1].Type)
	})
}
