package memory

import (
	"context"
	"sync"
	"time"

	"go-event-registry/internal/model"
	"go-event-registry/internal/repository"
	apperrors "go-event-registry/pkg/app_errors"
)

// UserRepository 記憶體版使用者名稱表
type UserRepository struct {
	mu       sync.RWMutex
	byCaller map[string]*model.UserRecord
	byName   map[string]*model.UserRecord
}

func NewUserRepository() repository.UserRepository {
	return &UserRepository{
		byCaller: make(map[string]*model.UserRecord),
		byName:   make(map[string]*model.UserRecord),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *model.UserRecord) (*model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.CreatedAt = time.Now().UTC()
	r.byCaller[stored.CallerID] = &stored
	r.byName[stored.Username] = &stored

	copied := stored
	return &copied, nil
}

func (r *UserRepository) FindByCallerID(ctx context.Context, callerID string) (*model.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byCaller[callerID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byName[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
