package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mintevents/event-portal-backend/internal/event"
	"github.com/mintevents/event-portal-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Register - POST /events/:id/register
func (h *Handler) Register(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req struct {
		FullName string `json:"full_name"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.FullName == "" {
		req.FullName = profile.FullName
	}

	reg, err := h.Service.Register(profile, uint(eventID), req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, event.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "event is not open for registration"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered", "registration": reg})
}

// ListByEvent - GET /events/:id/registrations
func (h *Handler) ListByEvent(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	regs, err := h.Service.ListByEvent(profile, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, event.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs, "count": len(regs)})
}

// Unregister - DELETE /events/:id/register
func (h *Handler) Unregister(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.Service.Unregister(profile, uint(eventID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unregistered"})
}
