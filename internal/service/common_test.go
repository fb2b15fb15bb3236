package service_test

import (
	"context"
	"sync"

	"go-event-registry/config"
	"go-event-registry/internal/cache"
	"go-event-registry/internal/feed"
	"go-event-registry/internal/model"
	"go-event-registry/internal/repository/memory"
	"go-event-registry/internal/service"
)

const testOwner = "owner"

// captureFeed 收集發佈的通知供測試斷言
type captureFeed struct {
	mu            sync.Mutex
	notifications []*model.Notification
}

func (f *captureFeed) Publish(ctx context.Context, notification *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *captureFeed) Subscribe(ctx context.Context) (<-chan feed.Delivery, error) {
	ch := make(chan feed.Delivery)
	close(ch)
	return ch, nil
}

func (f *captureFeed) Notifications() []*model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

func (f *captureFeed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = nil
}

func newTestAdminService(notificationFeed feed.NotificationFeed) service.AdminService {
	return service.NewAdminService(testOwner, config.DefaultEventNameConfig(), config.DefaultUsernameConfig(), notificationFeed)
}

func newTestEventService(singleEventPerCaller bool) (service.EventService, *captureFeed) {
	notificationFeed := &captureFeed{}
	admin := newTestAdminService(notificationFeed)
	svc := service.NewEventService(memory.NewEventRepository(), cache.NewNoopEventCache(), notificationFeed, admin, singleEventPerCaller)
	return svc, notificationFeed
}

func newTestEventServiceWithAdmin(admin service.AdminService) (service.EventService, *captureFeed) {
	notificationFeed := &captureFeed{}
	svc := service.NewEventService(memory.NewEventRepository(), cache.NewNoopEventCache(), notificationFeed, admin, false)
	return svc, notificationFeed
}

func newTestUserService() (service.UserService, *captureFeed) {
	notificationFeed := &captureFeed{}
	admin := newTestAdminService(notificationFeed)
	svc := service.NewUserService(memory.NewUserRepository(), notificationFeed, admin)
	return svc, notificationFeed
}

func testEventParams() model.EventParams {
	return model.EventParams{
		Name:        "test",
		Description: "This is a test",
		Location:    "At my place",
		Date:        "Tomorrow",
	}
}
