package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/features/home/activity/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func ActivityRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActivityController(db)

	logs := api.Group("/activity-logs", authMw.AuthMiddleware(db))
	logs.Get("/", ctrl.GetActivityLogs)
}
