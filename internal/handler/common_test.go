package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-event-registry/config"
	"go-event-registry/internal/cache"
	"go-event-registry/internal/feed"
	"go-event-registry/internal/handler"
	"go-event-registry/internal/model"
	"go-event-registry/internal/repository/memory"
	"go-event-registry/internal/service"

	"github.com/gin-gonic/gin"
)

const testOwner = "owner"

type discardFeed struct{}

func (f *discardFeed) Publish(ctx context.Context, notification *model.Notification) error {
	return nil
}

func (f *discardFeed) Subscribe(ctx context.Context) (<-chan feed.Delivery, error) {
	ch := make(chan feed.Delivery)
	close(ch)
	return ch, nil
}

func newTestRouter(t *testing.T, singleEventPerCaller bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	notificationFeed := &discardFeed{}
	admin := service.NewAdminService(testOwner, config.DefaultEventNameConfig(), config.DefaultUsernameConfig(), notificationFeed)
	eventService := service.NewEventService(memory.NewEventRepository(), cache.NewNoopEventCache(), notificationFeed, admin, singleEventPerCaller)
	userService := service.NewUserService(memory.NewUserRepository(), notificationFeed, admin)

	router := gin.New()
	handler.NewEventHandler(eventService, singleEventPerCaller).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewAdminHandler(admin).RegisterRoutes(router)
	handler.NewNotificationHandler(memory.NewNotificationRepository()).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(handler.CallerIDHeader, caller)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const createEventBody = `{"name":"test","description":"This is a test","location":"At my place","date":"Tomorrow"}`

func createTestEvent(t *testing.T, router *gin.Engine, caller string) {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/v1/events", caller, createEventBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test event: status %d body %s", w.Code, w.Body.String())
	}
}
