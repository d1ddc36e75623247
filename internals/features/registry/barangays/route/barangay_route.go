package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func BarangayRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBarangayController(db)

	barangays := api.Group("/barangays", authMw.AuthMiddleware(db))
	barangays.Get("/", ctrl.GetBarangays)
	barangays.Get("/:id", ctrl.GetBarangay)
	barangays.Post("/",
		authMw.OnlyRoles(constants.RoleErrorAdmin("register barangays"), constants.BarangayEditors...),
		ctrl.CreateBarangay,
	)
}
