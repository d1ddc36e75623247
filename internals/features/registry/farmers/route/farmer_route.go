package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func FarmerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFarmerController(db)

	farmers := api.Group("/farmers", authMw.AuthMiddleware(db))

	// every authenticated role may read
	farmers.Get("/", ctrl.GetFarmers)
	farmers.Get("/:id", ctrl.GetFarmer)

	encoder := authMw.OnlyRoles(constants.RoleErrorEncoder("manage farmer records"), constants.EncoderAndAbove...)
	farmers.Post("/", encoder, ctrl.CreateFarmer)
	farmers.Put("/:id", encoder, ctrl.UpdateFarmer)
	farmers.Post("/:id/products", encoder, ctrl.AddFarmerProducts)
	farmers.Put("/:id/products", encoder, ctrl.ReplaceFarmerProducts)
	farmers.Post("/:id/children", encoder, ctrl.AddFarmerChild)
	farmers.Put("/:id/children/:childId", encoder, ctrl.UpdateFarmerChild)

	researcher := authMw.OnlyRoles(constants.RoleErrorResearch("remove succession records"), constants.ResearcherAndAbove...)
	farmers.Delete("/:id/children/:childId", researcher, ctrl.DeleteFarmerChild)

	admin := authMw.OnlyRoles(constants.RoleErrorAdmin("delete farmer records"), constants.AdminOnly...)
	farmers.Delete("/:id", admin, ctrl.DeleteFarmer)

	export := api.Group("/export", authMw.AuthMiddleware(db))
	export.Get("/farmers", ctrl.ExportFarmers)
}
