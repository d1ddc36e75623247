package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

// Feed size shown in the bell dropdown. Older rows stay in the table but
// are never served.
const feedLimit = 20

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func serializeNotification(n *model.NotificationModel) fiber.Map {
	return fiber.Map{
		"id":               n.ID,
		"title":            n.Title,
		"message":          n.Message,
		"is_read":          n.IsRead,
		"created_at":       n.CreatedAt,
		"created_at_human": n.CreatedAt.Format("Jan 02, 3:04 PM"),
	}
}

// GET /api/notifications
//
// A user only ever sees their own rows.
func (ctrl *NotificationController) GetNotifications(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var notifications []model.NotificationModel
	if err := ctrl.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&notifications).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	var unread int64
	ctrl.DB.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&unread)

	items := make([]fiber.Map, 0, len(notifications))
	for i := range notifications {
		items = append(items, serializeNotification(&notifications[i]))
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"notifications": items,
		"unread_count":  unread,
	})
}

// PUT /api/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var notification model.NotificationModel
	if err := ctrl.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := ctrl.DB.Save(&notification).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
		}
	}
	return helper.JsonUpdated(c, "Notification marked as read", serializeNotification(&notification))
}

// PUT /api/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	res := ctrl.DB.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notifications")
	}
	return helper.JsonUpdated(c, "All notifications marked as read", fiber.Map{
		"updated": res.RowsAffected,
	})
}

// DELETE /api/notifications
func (ctrl *NotificationController) ClearNotifications(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	res := ctrl.DB.Where("user_id = ?", userID).Delete(&model.NotificationModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to clear notifications")
	}
	return helper.JsonDeleted(c, "Notifications cleared", fiber.Map{
		"deleted": res.RowsAffected,
	})
}
