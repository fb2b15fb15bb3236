package feed_test

import (
	"context"
	"testing"
	"time"

	"go-event-registry/internal/feed"
	"go-event-registry/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveDelivery(t *testing.T, ch <-chan feed.Delivery) feed.Delivery {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return feed.Delivery{}
	}
}

func TestMemoryFeed(t *testing.T) {
	t.Run("Success - published notification is delivered", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f := feed.NewMemoryFeed(4)
		msgs, err := f.Subscribe(ctx)
		require.NoError(t, err)

		n := model.NewEventNotification("alice", 1, "test", "This is a test")
		require.NoError(t, f.Publish(ctx, n))

		d := receiveDelivery(t, msgs)
		assert.Equal(t, model.NotificationNewEvent, d.Data.Type)
		assert.Equal(t, int64(1), d.Data.EventID)
		d.Ack()
	})

	t.Run("Success - nack with requeue redelivers", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f := feed.NewMemoryFeed(4)
		msgs, err := f.Subscribe(ctx)
		require.NoError(t, err)

		n := model.UsernameSetNotification("alice", "test")
		require.NoError(t, f.Publish(ctx, n))

		first := receiveDelivery(t, msgs)
		first.Nack(true)

		second := receiveDelivery(t, msgs)
		assert.Equal(t, n.ID, second.Data.ID)
		second.Ack()
	})

	t.Run("Success - nack with requeue does not block when the buffer is full", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f := feed.NewMemoryFeed(1)
		msgs, err := f.Subscribe(ctx)
		require.NoError(t, err)

		a := model.UsernameSetNotification("alice", "test")
		require.NoError(t, f.Publish(ctx, a))
		first := receiveDelivery(t, msgs)
		require.Equal(t, a.ID, first.Data.ID)

		// b 被訂閱端 goroutine 取走後卡在投遞，c 填滿 buffer
		b := model.UsernameSetNotification("bob", "test2")
		require.NoError(t, f.Publish(ctx, b))
		c := model.UsernameSetNotification("carol", "test3")
		require.NoError(t, f.Publish(ctx, c))

		done := make(chan struct{})
		go func() {
			first.Nack(true)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("nack blocked on a full buffer")
		}

		second := receiveDelivery(t, msgs)
		assert.Equal(t, b.ID, second.Data.ID)
		third := receiveDelivery(t, msgs)
		assert.Equal(t, c.ID, third.Data.ID)
	})

	t.Run("Success - subscribe channel closes on context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		f := feed.NewMemoryFeed(4)
		msgs, err := f.Subscribe(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-msgs:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after cancel")
		}
	})
}
