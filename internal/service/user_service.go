package service

import (
	"context"
	"errors"
	"sync"

	"go-event-registry/internal/feed"
	"go-event-registry/internal/model"
	"go-event-registry/internal/repository"
	"go-event-registry/internal/validation"
	apperrors "go-event-registry/pkg/app_errors"
	"go-event-registry/pkg/logger"

	"go.uber.org/zap"
)

// UserService 使用者名稱目錄：一個身份最多一個名稱，一個名稱最多一個身份，
// 設定後不可變更。
type UserService interface {
	SetUsername(ctx context.Context, caller string, username string) (*model.UserRecord, error)
	// FirstConnection 呼叫者還沒有使用者名稱時回傳 true
	FirstConnection(ctx context.Context, caller string) (bool, error)
}

type UserServiceImpl struct {
	repo  repository.UserRepository
	feed  feed.NotificationFeed
	admin AdminService

	mu sync.Mutex
}

func NewUserService(repo repository.UserRepository, notificationFeed feed.NotificationFeed, admin AdminService) UserService {
	return &UserServiceImpl{
		repo:  repo,
		feed:  notificationFeed,
		admin: admin,
	}
}

func (s *UserServiceImpl) SetUsername(ctx context.Context, caller string, username string) (*model.UserRecord, error) {
	if ok, reason := validation.Validate(username, s.admin.UsernameConfig()); !ok {
		return nil, apperrors.NewValidationError(reason.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.FindByCallerID(ctx, caller)
	if err == nil {
		return nil, apperrors.ErrAlreadyHasUsername
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	_, err = s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &model.UserRecord{CallerID: caller, Username: username})
	if err != nil {
		return nil, err
	}

	if err := s.feed.Publish(ctx, model.UsernameSetNotification(caller, username)); err != nil {
		logger.WithComponent("service").Warn("publish username set failed", zap.String("caller", caller), zap.Error(err))
	}
	return user, nil
}

func (s *UserServiceImpl) FirstConnection(ctx context.Context, caller string) (bool, error) {
	_, err := s.repo.FindByCallerID(ctx, caller)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return true, nil
	}
	return false, err
}
