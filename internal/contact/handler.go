package contact

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mintevents/event-portal-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// SubmitMessage - POST /contact (public)
func (h *Handler) SubmitMessage(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Text  string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.Service.SubmitMessage(req.Name, req.Email, req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "thanks for reaching out", "id": m.ID})
}

// ListMessages - GET /contact/messages (admin)
func (h *Handler) ListMessages(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	unreadOnly := c.Query("unread") == "true"

	messages, total, err := h.Service.ListMessages(profile, limit, (page-1)*limit, unreadOnly)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": total, "page": page, "limit": limit})
}

// MarkMessageRead - PATCH /contact/messages/:id/read (admin)
func (h *Handler) MarkMessageRead(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.Service.MarkMessageRead(profile, uint(id)); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}

// Reply - POST /contact/messages/:id/reply (admin)
func (h *Handler) Reply(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req struct {
		ReplyText string `json:"reply_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	reply, err := h.Service.Reply(profile, uint(id), req.ReplyText, ip)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "reply sent", "reply": reply})
}

// ListMyReplies - GET /contact/replies (any signed-in user)
func (h *Handler) ListMyReplies(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	replies, err := h.Service.ListMyReplies(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list replies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// MarkReplyRead - PATCH /contact/replies/:id/read
func (h *Handler) MarkReplyRead(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply id"})
		return
	}

	if err := h.Service.MarkReplyRead(profile, uint(id)); err != nil {
		if errors.Is(err, ErrReplyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark reply read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
