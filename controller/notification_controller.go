// controller/notification_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/dao"
	"github.com/campusforge/aegis/util"
	helper_util "github.com/campusforge/aegis/util/helper"
)

type NotificationController struct {
	notificationDAO *dao.NotificationDAO
}

func NewNotificationController(notificationDAO *dao.NotificationDAO) *NotificationController {
	return &NotificationController{notificationDAO: notificationDAO}
}

// RegisterRoutes registers the API routes
func (nc *NotificationController) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("/:recipientId", nc.ListNotifications)
		notifications.POST("/:recipientId/:id/read", nc.MarkRead)
	}
}

// ListNotifications endpoint
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", aegis_errors.ErrInvalidPagination)
		return
	}

	notifications, err := nc.notificationDAO.ListForRecipient(c.Request.Context(), c.Param("recipientId"), limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead endpoint
func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.notificationDAO.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to mark notification read", err)
		return
	}
	c.Status(http.StatusNoContent)
}
