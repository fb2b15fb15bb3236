package handler

import (
	"context"
	"errors"
	"net/http"

	"go-event-registry/internal/service"
	"go-event-registry/internal/validation"
	apperrors "go-event-registry/pkg/app_errors"
	"go-event-registry/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/admin")
	{
		router.GET("owner", h.Owner)

		config := router.Group("config", RequireCaller())
		{
			config.PUT("event-name/valid-range", h.setValidRange(h.service.SetEventNameValidRange))
			config.PUT("event-name/invalid-ranges", h.setInvalidRanges(h.service.SetEventNameInvalidRanges))
			config.PUT("event-name/max-length", h.setLength(h.service.SetEventNameMaxLength))
			config.PUT("event-name/min-length", h.setLength(h.service.SetEventNameMinLength))
			config.PUT("username/valid-range", h.setValidRange(h.service.SetUsernameValidRange))
			config.PUT("username/invalid-ranges", h.setInvalidRanges(h.service.SetUsernameInvalidRanges))
			config.PUT("username/max-length", h.setLength(h.service.SetUsernameMaxLength))
			config.PUT("username/min-length", h.setLength(h.service.SetUsernameMinLength))
		}
	}
}

type CharRangeRequest struct {
	Low  byte `json:"low"`
	High byte `json:"high"`
}

func (r CharRangeRequest) toRange() validation.CharRange {
	return validation.CharRange{Low: r.Low, High: r.High}
}

type InvalidRangesRequest struct {
	Ranges []CharRangeRequest `json:"ranges" binding:"required"`
}

type LengthRequest struct {
	Value *int `json:"value" binding:"required"`
}

func (h *AdminHandler) Owner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"owner": h.service.Owner()})
}

func (h *AdminHandler) setValidRange(set func(ctx context.Context, caller string, r validation.CharRange) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CharRangeRequest
		if err := BindJson(c, &req); err != nil {
			return
		}
		if err := set(c, CallerID(c), req.toRange()); err != nil {
			h.handleError(c, err, "SetValidRange")
			return
		}
		c.JSON(http.StatusOK, gin.H{"low": req.Low, "high": req.High})
	}
}

func (h *AdminHandler) setInvalidRanges(set func(ctx context.Context, caller string, ranges []validation.CharRange) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InvalidRangesRequest
		if err := BindJson(c, &req); err != nil {
			return
		}
		ranges := make([]validation.CharRange, 0, len(req.Ranges))
		for _, r := range req.Ranges {
			ranges = append(ranges, r.toRange())
		}
		if err := set(c, CallerID(c), ranges); err != nil {
			h.handleError(c, err, "SetInvalidRanges")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ranges": req.Ranges})
	}
}

func (h *AdminHandler) setLength(set func(ctx context.Context, caller string, length int) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LengthRequest
		if err := BindJson(c, &req); err != nil {
			return
		}
		if err := set(c, CallerID(c), *req.Value); err != nil {
			h.handleError(c, err, "SetLength")
			return
		}
		c.JSON(http.StatusOK, gin.H{"value": *req.Value})
	}
}

func (h *AdminHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrNotOwner):
		log.Warn("Caller is not the owner")
		c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not the owner"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
