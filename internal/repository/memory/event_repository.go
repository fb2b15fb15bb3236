package memory

import (
	"context"
	"sync"
	"time"

	"go-event-registry/internal/model"
	"go-event-registry/internal/repository"
	apperrors "go-event-registry/pkg/app_errors"
)

// EventRepository 記憶體版，供單元測試與 standalone 模式使用。
// id 從 1 開始遞增，不重複使用。
type EventRepository struct {
	mu     sync.RWMutex
	events []*model.Event
	nextID int64
}

func NewEventRepository() repository.EventRepository {
	return &EventRepository{nextID: 1}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *event
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextID++
	r.events = append(r.events, &stored)

	copied := stored
	return &copied, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		copied := *e
		events = append(events, &copied)
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.findByID(id)
	if e == nil {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *EventRepository) FindOpenByName(ctx context.Context, name string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.Name == name && e.Status == model.EventStatusOpen {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *EventRepository) FindOpenByOwner(ctx context.Context, owner string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.Owner == owner && e.Status == model.EventStatusOpen {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *EventRepository) Update(ctx context.Context, id int64, params model.UpdateEventParams) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.findByID(id)
	if e == nil {
		return nil, apperrors.ErrEventNotFound
	}
	if params.Name == nil && params.Description == nil && params.Location == nil && params.Date == nil {
		return nil, apperrors.ErrInvalidInput
	}

	if params.Name != nil {
		e.Name = *params.Name
	}
	if params.Description != nil {
		e.Description = *params.Description
	}
	if params.Location != nil {
		e.Location = *params.Location
	}
	if params.Date != nil {
		e.Date = *params.Date
	}
	e.UpdatedAt = time.Now().UTC()

	copied := *e
	return &copied, nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status model.EventStatus) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.findByID(id)
	if e == nil {
		return nil, apperrors.ErrEventNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now().UTC()

	copied := *e
	return &copied, nil
}

func (r *EventRepository) findByID(id int64) *model.Event {
	for _, e := range r.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}
