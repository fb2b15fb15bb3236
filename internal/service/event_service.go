package service

import (
	"context"
	"errors"
	"sync"

	"go-event-registry/internal/cache"
	"go-event-registry/internal/feed"
	"go-event-registry/internal/model"
	"go-event-registry/internal/repository"
	"go-event-registry/internal/validation"
	apperrors "go-event-registry/pkg/app_errors"
	"go-event-registry/pkg/logger"

	"go.uber.org/zap"
)

// EventService 活動生命週期狀態機：NonExistent → Open → Closed（終態）。
// 名稱唯一性只在未關閉的活動之間檢查，關閉後名稱即釋出。
type EventService interface {
	Create(ctx context.Context, caller string, params model.EventParams) (*model.Event, error)
	// Get 回傳未關閉的活動；已關閉回傳 ErrEventClosed，從未建立回傳 ErrEventNotFound
	Get(ctx context.Context, id int64) (*model.Event, error)
	// Search 以名稱線性搜尋未關閉的活動；已關閉或不存在都回傳 ErrEventNotFound
	Search(ctx context.Context, name string) (*model.Event, error)
	// List 回傳所有活動（含已關閉），依建立順序
	List(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, caller string, id int64, params model.EventParams) (*model.Event, error)
	Close(ctx context.Context, caller string, id int64) (*model.Event, error)
	// UpdateOwn / CloseOwn 不帶 id，作用於呼叫者自己未關閉的活動（單一活動模式）
	UpdateOwn(ctx context.Context, caller string, params model.EventParams) (*model.Event, error)
	CloseOwn(ctx context.Context, caller string) (*model.Event, error)
}

type EventServiceImpl struct {
	repo  repository.EventRepository
	cache cache.EventCache
	feed  feed.NotificationFeed
	admin AdminService
	// singleEventPerCaller 為 true 時每個身份最多一個未關閉的活動
	singleEventPerCaller bool

	// mu 讓每個變更操作成為單一臨界區，check-then-act 不會交錯
	mu sync.Mutex
}

func NewEventService(repo repository.EventRepository, eventCache cache.EventCache, notificationFeed feed.NotificationFeed, admin AdminService, singleEventPerCaller bool) EventService {
	return &EventServiceImpl{
		repo:                 repo,
		cache:                eventCache,
		feed:                 notificationFeed,
		admin:                admin,
		singleEventPerCaller: singleEventPerCaller,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, caller string, params model.EventParams) (*model.Event, error) {
	if err := s.validateName(params.Name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.singleEventPerCaller {
		_, err := s.repo.FindOpenByOwner(ctx, caller)
		if err == nil {
			return nil, apperrors.ErrAlreadyHasEvent
		}
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			return nil, err
		}
	}

	_, err := s.repo.FindOpenByName(ctx, params.Name)
	if err == nil {
		return nil, apperrors.ErrDuplicateEventName
	}
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		return nil, err
	}

	event := &model.Event{
		Name:        params.Name,
		Description: params.Description,
		Location:    params.Location,
		Date:        params.Date,
		Owner:       caller,
		Status:      model.EventStatusOpen,
	}
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.setCache(ctx, created)
	s.publish(ctx, model.NewEventNotification(caller, created.ID, created.Name, created.Description))
	return created, nil
}

func (s *EventServiceImpl) Get(ctx context.Context, id int64) (*model.Event, error) {
	if event, err := s.cache.Get(ctx, id); err == nil {
		if event.Status == model.EventStatusClosed {
			return nil, apperrors.ErrEventClosed
		}
		return event, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WithComponent("service").Warn("event cache get failed", zap.Int64("event_id", id), zap.Error(err))
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status == model.EventStatusClosed {
		return nil, apperrors.ErrEventClosed
	}

	s.setCache(ctx, event)
	return event, nil
}

func (s *EventServiceImpl) Search(ctx context.Context, name string) (*model.Event, error) {
	if err := s.validateName(name); err != nil {
		return nil, err
	}
	return s.repo.FindOpenByName(ctx, name)
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) Update(ctx context.Context, caller string, id int64, params model.EventParams) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, caller, event, params)
}

func (s *EventServiceImpl) UpdateOwn(ctx context.Context, caller string, params model.EventParams) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.repo.FindOpenByOwner(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, caller, event, params)
}

func (s *EventServiceImpl) update(ctx context.Context, caller string, event *model.Event, params model.EventParams) (*model.Event, error) {
	if event.Status == model.EventStatusClosed {
		return nil, apperrors.ErrEventClosed
	}
	if event.Owner != caller {
		return nil, apperrors.ErrNotEventOwner
	}
	if err := s.validateName(params.Name); err != nil {
		return nil, err
	}

	if params.Name != event.Name {
		existing, err := s.repo.FindOpenByName(ctx, params.Name)
		if err == nil && existing.ID != event.ID {
			return nil, apperrors.ErrDuplicateEventName
		}
		if err != nil && !errors.Is(err, apperrors.ErrEventNotFound) {
			return nil, err
		}
	}

	patch := model.UpdateEventParams{}
	changed := []model.EventField{}
	if params.Name != event.Name {
		patch.Name = &params.Name
		changed = append(changed, model.EventFieldName)
	}
	if params.Description != event.Description {
		patch.Description = &params.Description
		changed = append(changed, model.EventFieldDescription)
	}
	if params.Location != event.Location {
		patch.Location = &params.Location
		changed = append(changed, model.EventFieldLocation)
	}
	if params.Date != event.Date {
		patch.Date = &params.Date
		changed = append(changed, model.EventFieldDate)
	}

	// 沒有任何欄位改變：不寫入、不發通知
	if len(changed) == 0 {
		return event, nil
	}

	updated, err := s.repo.Update(ctx, event.ID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, event.ID)
	for _, field := range changed {
		s.publish(ctx, model.EventUpdatedNotification(caller, event.ID, field))
	}
	return updated, nil
}

func (s *EventServiceImpl) Close(ctx context.Context, caller string, id int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.close(ctx, caller, event)
}

func (s *EventServiceImpl) CloseOwn(ctx context.Context, caller string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.repo.FindOpenByOwner(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.close(ctx, caller, event)
}

func (s *EventServiceImpl) close(ctx context.Context, caller string, event *model.Event) (*model.Event, error) {
	if !event.Status.CanTransitionTo(model.EventStatusClosed) {
		return nil, apperrors.ErrEventClosed
	}
	if event.Owner != caller {
		return nil, apperrors.ErrNotEventOwner
	}

	closed, err := s.repo.UpdateStatus(ctx, event.ID, model.EventStatusClosed)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, event.ID)
	s.publish(ctx, model.EventClosedNotification(caller, event.ID, event.Name))
	return closed, nil
}

func (s *EventServiceImpl) validateName(name string) error {
	if ok, reason := validation.Validate(name, s.admin.EventNameConfig()); !ok {
		return apperrors.NewValidationError(reason.String())
	}
	return nil
}

func (s *EventServiceImpl) setCache(ctx context.Context, event *model.Event) {
	if err := s.cache.Set(ctx, event); err != nil {
		logger.WithComponent("service").Warn("event cache set failed", zap.Int64("event_id", event.ID), zap.Error(err))
	}
}

func (s *EventServiceImpl) invalidateCache(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.WithComponent("service").Warn("event cache invalidate failed", zap.Int64("event_id", id), zap.Error(err))
	}
}

func (s *EventServiceImpl) publish(ctx context.Context, notification *model.Notification) {
	if err := s.feed.Publish(ctx, notification); err != nil {
		logger.WithComponent("service").Warn("publish notification failed", zap.String("type", string(notification.Type)), zap.Error(err))
	}
}
