package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prefabworks/server/internal/shared/middleware"
)

// Handler handles HTTP requests for notifications.
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers notification routes that require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
	}
}

// List returns the caller's notifications, newest first.
//
//	@Summary		List notifications
//	@Description	List notifications addressed to the caller
//	@Tags			Notification
//	@Produce		json
//	@Security		BearerAuth
//	@Param			unread	query		bool	false	"Only unread notifications"
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Offset"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		401		{object}	map[string]string
//	@Router			/notifications [get]
func (h *Handler) List(c *gin.Context) {
	recipient, ok := callerRecipient(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.List(c.Request.Context(), recipient, unreadOnly, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
	})
}

// UnreadCount returns the caller's unread notification count.
//
//	@Summary		Unread count
//	@Description	Count of unread notifications addressed to the caller
//	@Tags			Notification
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Failure		401	{object}	map[string]string
//	@Router			/notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	recipient, ok := callerRecipient(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), recipient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread_count": count,
	})
}

// MarkRead marks a single notification as read.
//
//	@Summary		Mark notification read
//	@Tags			Notification
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Notification ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/notifications/{id}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	recipient, ok := callerRecipient(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, recipient); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkAllRead marks all of the caller's notifications as read.
//
//	@Summary		Mark all notifications read
//	@Tags			Notification
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]string
//	@Router			/notifications/read-all [post]
func (h *Handler) MarkAllRead(c *gin.Context) {
	recipient, ok := callerRecipient(c)
	if !ok {
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), recipient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// callerRecipient maps the acting user to a notification recipient. Admins
// share the admin group feed; personnel share the personnel feed; customers
// each see their own.
func callerRecipient(c *gin.Context) (Recipient, bool) {
	switch middleware.GetActorRole(c) {
	case middleware.RoleAdmin:
		return Recipient{Class: RecipientAdminGroup}, true
	case middleware.RolePersonnel:
		return Recipient{Class: RecipientPersonnel}, true
	case middleware.RoleCustomer:
		id := middleware.GetActorID(c)
		if id == uuid.Nil {
			break
		}
		return Recipient{Class: RecipientCustomer, CustomerID: id}, true
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown_actor"})
	return Recipient{}, false
}
