package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/features/home/dashboard/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)

	dashboard := api.Group("/dashboard", authMw.AuthMiddleware(db))
	dashboard.Get("/stats", ctrl.GetDashboard)
}
