package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-event-registry/internal/model"
	"go-event-registry/internal/service"
	apperrors "go-event-registry/pkg/app_errors"
	"go-event-registry/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
	// singleEventPerCaller 為 true 時額外暴露不帶 id 的 own 路由
	singleEventPerCaller bool
}

func NewEventHandler(service service.EventService, singleEventPerCaller bool) *EventHandler {
	return &EventHandler{service: service, singleEventPerCaller: singleEventPerCaller}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/search", h.Search)
		router.GET("events/:id", h.Get)
		router.POST("events", RequireCaller(), h.Create)
		if h.singleEventPerCaller {
			router.PUT("events/own", RequireCaller(), h.UpdateOwn)
			router.POST("events/own/close", RequireCaller(), h.CloseOwn)
		}
		router.PUT("events/:id", RequireCaller(), h.Update)
		router.POST("events/:id/close", RequireCaller(), h.Close)
	}
}

// EventRequest 建立與更新活動請求，四個欄位都必填傳入
type EventRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
}

func (r *EventRequest) toParams() model.EventParams {
	return model.EventParams{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Date:        r.Date,
	}
}

type SearchEventRequest struct {
	Name string `form:"name" binding:"required"`
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	event, err := h.service.Get(c, id)
	if err != nil {
		h.handleError(c, err, "Get")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Search(c *gin.Context) {
	var req SearchEventRequest
	if err := BindQuery(c, &req); err != nil {
		return
	}
	event, err := h.service.Search(c, req.Name)
	if err != nil {
		h.handleError(c, err, "Search")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, CallerID(c), req.toParams())
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	updated, err := h.service.Update(c, CallerID(c), id, req.toParams())
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) UpdateOwn(c *gin.Context) {
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	updated, err := h.service.UpdateOwn(c, CallerID(c), req.toParams())
	if err != nil {
		h.handleError(c, err, "UpdateOwn")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Close(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	closed, err := h.service.Close(c, CallerID(c), id)
	if err != nil {
		h.handleError(c, err, "Close")
		return
	}
	c.JSON(http.StatusOK, closed)
}

func (h *EventHandler) CloseOwn(c *gin.Context) {
	closed, err := h.service.CloseOwn(c, CallerID(c))
	if err != nil {
		h.handleError(c, err, "CloseOwn")
		return
	}
	c.JSON(http.StatusOK, closed)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidString):
		log.Warn("Invalid name")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrEventClosed):
		log.Warn("Event is closed")
		c.JSON(http.StatusConflict, gin.H{"error": "Event is closed"})
	case errors.Is(err, apperrors.ErrDuplicateEventName):
		log.Warn("Event already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "Event already exists"})
	case errors.Is(err, apperrors.ErrAlreadyHasEvent):
		log.Warn("User already has an event")
		c.JSON(http.StatusConflict, gin.H{"error": "User already has an event"})
	case errors.Is(err, apperrors.ErrNotEventOwner):
		log.Warn("Caller is not the event owner")
		c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not the event owner"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
