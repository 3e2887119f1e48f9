package routes

import (
	"net/http"
	"strconv"

	"FinControl/internal/contracts"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	onlyUnread := false
	if value := c.Query("unread"); value != "" {
		onlyUnread, err = strconv.ParseBool(value)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("unread", "valor booleano inválido"))
			return
		}
	}

	pagination := h.parsePagination(c)
	items, total, err := h.NotificationService.List(c.Request.Context(), userID, onlyUnread, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

func (h *Handler) CountUnreadNotifications(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	count, err := h.NotificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UnreadCountResponse{Count: count})
}

func (h *Handler) MarkNotificationAsRead(c *gin.Context) {
	notificationID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.NotificationService.MarkAsRead(c.Request.Context(), notificationID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Notificação marcada como lida"})
}

func (h *Handler) MarkAllNotificationsAsRead(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.NotificationService.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AffectedResponse{
		Message:  "Notificações marcadas como lidas",
		Affected: updated,
	})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	notificationID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.NotificationService.Delete(c.Request.Context(), notificationID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Notificação removida com sucesso"})
}

func (h *Handler) DeleteReadNotifications(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	deleted, err := h.NotificationService.DeleteAllRead(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AffectedResponse{
		Message:  "Notificações lidas removidas",
		Affected: deleted,
	})
}
