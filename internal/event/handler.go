package event

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mintevents/event-portal-backend/middleware"
)

type Handler struct {
	Service   *Service
	UploadDir string
}

func NewHandler(s *Service, uploadDir string) *Handler {
	return &Handler{Service: s, UploadDir: uploadDir}
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ===========================
// Submit - POST /events
func (h *Handler) Submit(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	var req SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.Submit(&req, profile, ip)
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "event submitted", "event": e})
}

// ===========================
// Approve - PATCH /events/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	h.runTransition(c, ActionApprove)
}

// Reject - PATCH /events/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	h.runTransition(c, ActionReject)
}

func (h *Handler) runTransition(c *gin.Context, action Action) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	var e *Event
	if action == ActionApprove {
		e, err = h.Service.Approve(uint(id), profile, ip)
	} else {
		var req struct {
			Reason string `json:"reason"`
		}
		_ = c.ShouldBindJSON(&req)
		e, err = h.Service.Reject(uint(id), profile, req.Reason, ip)
	}

	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "event": e})
}

// ===========================
// Update - PUT /events/:id
func (h *Handler) Update(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.Update(uint(id), &req, profile, ip)
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event updated", "event": e})
}

// ===========================
// Delete - DELETE /events/:id
func (h *Handler) Delete(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Delete(uint(id), profile, ip); err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// ===========================
// Reads

// ListApproved - GET /events (public listing)
func (h *Handler) ListApproved(c *gin.Context) {
	events, err := h.Service.ListApproved()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetByID - GET /events/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	e, err := h.Service.GetByID(uint(id))
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

// ListPending - GET /events/pending (head/admin approval queue)
func (h *Handler) ListPending(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	events, err := h.Service.ListPendingForRole(profile)
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ListMine - GET /events/mine (submitter's own proposals)
func (h *Handler) ListMine(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	events, err := h.Service.ListMine(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ListAll - GET /events/all (admin panel)
func (h *Handler) ListAll(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	events, total, err := h.Service.ListAll(profile, limit, (page-1)*limit, c.Query("search"))
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "total": total, "page": page, "limit": limit})
}

// ===========================
// UploadImage - POST /events/upload
// Image upload is optional and never blocks submission; the panel submits
// the event without an image when this fails.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image not found in request"})
		return
	}

	ext := filepath.Ext(file.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	if err := os.MkdirAll(h.UploadDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}

	fileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(h.UploadDir, fileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "image uploaded",
		"url":     fmt.Sprintf("/uploads/%s", fileName),
	})
}
