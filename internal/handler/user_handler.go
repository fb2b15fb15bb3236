package handler

import (
	"errors"
	"net/http"

	"go-event-registry/internal/service"
	apperrors "go-event-registry/pkg/app_errors"
	"go-event-registry/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/users")
	{
		router.POST("username", RequireCaller(), h.SetUsername)
		router.GET("first-connection", RequireCaller(), h.FirstConnection)
	}
}

type SetUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *UserHandler) SetUsername(c *gin.Context) {
	var req SetUsernameRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.service.SetUsername(c, CallerID(c), req.Username)
	if err != nil {
		h.handleError(c, err, "SetUsername")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) FirstConnection(c *gin.Context) {
	first, err := h.service.FirstConnection(c, CallerID(c))
	if err != nil {
		h.handleError(c, err, "FirstConnection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"first_connection": first})
}

func (h *UserHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidString):
		log.Warn("Invalid username")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyHasUsername):
		log.Warn("User already has a username")
		c.JSON(http.StatusConflict, gin.H{"error": "User already has a username"})
	case errors.Is(err, apperrors.ErrUsernameTaken):
		log.Warn("Username already taken")
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
