package reports

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mintevents/event-portal-backend/internal/event"
	"github.com/mintevents/event-portal-backend/middleware"
)

type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

// Generate - GET /reports/:type?format=csv&start=2025-01-01&end=2025-12-31
func (h *Handler) Generate(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reportType := c.Param("type")
	format := c.DefaultQuery("format", FormatCSV)

	var filters Filters
	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		filters.Start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		// Inclusive end of day.
		filters.End = t.Add(24*time.Hour - time.Second)
	}
	filters.Status = c.Query("status")
	filters.Role = c.Query("role")
	if v := c.Query("event_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_id"})
			return
		}
		filters.EventID = uint(id)
	}

	data, filename, contentType, err := h.Svc.Generate(profile, reportType, format, filters)
	if err != nil {
		if errors.Is(err, event.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
