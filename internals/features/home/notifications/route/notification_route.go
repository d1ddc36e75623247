package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notifications := api.Group("/notifications", authMw.AuthMiddleware(db))
	notifications.Get("/", ctrl.GetNotifications)
	notifications.Put("/read-all", ctrl.MarkAllRead)
	notifications.Put("/:id/read", ctrl.MarkRead)
	notifications.Delete("/", ctrl.ClearNotifications)
}
