package memory_test

import (
	"context"
	"testing"

	"go-event-registry/internal/model"
	"go-event-registry/internal/repository/memory"
	apperrors "go-event-registry/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository(t *testing.T) {
	ctx := context.Background()

	newEvent := func(name, owner string) *model.Event {
		return &model.Event{
			Name:   name,
			Owner:  owner,
			Status: model.EventStatusOpen,
		}
	}

	t.Run("Success - ids start at 1 and are never reused", func(t *testing.T) {
		repo := memory.NewEventRepository()

		first, err := repo.Create(ctx, newEvent("test", "alice"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.ID)

		_, err = repo.UpdateStatus(ctx, 1, model.EventStatusClosed)
		require.NoError(t, err)

		second, err := repo.Create(ctx, newEvent("test", "bob"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("Success - FindOpenByName skips closed events", func(t *testing.T) {
		repo := memory.NewEventRepository()
		_, err := repo.Create(ctx, newEvent("test", "alice"))
		require.NoError(t, err)

		found, err := repo.FindOpenByName(ctx, "test")
		require.NoError(t, err)
		assert.Equal(t, int64(1), found.ID)

		_, err = repo.UpdateStatus(ctx, 1, model.EventStatusClosed)
		require.NoError(t, err)

		_, err = repo.FindOpenByName(ctx, "test")
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("Success - returned records are copies", func(t *testing.T) {
		repo := memory.NewEventRepository()
		_, err := repo.Create(ctx, newEvent("test", "alice"))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		found.Name = "mutated"

		again, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "test", again.Name)
	})

	t.Run("Failed - update with no fields", func(t *testing.T) {
		repo := memory.NewEventRepository()
		_, err := repo.Create(ctx, newEvent("test", "alice"))
		require.NoError(t, err)

		_, err = repo.Update(ctx, 1, model.UpdateEventParams{})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
