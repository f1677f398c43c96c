package dashboard

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

// Save - POST /dashboard/:eventId
func (h *Handler) Save(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	entry, err := h.Service.Save(profile, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadySaved):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, event.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save event"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "event saved", "entry": entry})
}

// List - GET /dashboard
func (h *Handler) List(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	entries, err := h.Service.List(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Remove - DELETE /dashboard/:id
func (h *Handler) Remove(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.Service.Remove(profile, uint(entryID)); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry removed"})
}
