package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/products/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func ProductRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProductController(db)

	products := api.Group("/products", authMw.AuthMiddleware(db))
	products.Get("/", ctrl.GetProducts)

	research := authMw.OnlyRoles(constants.RoleErrorResearch("manage the product catalog"), constants.ResearcherAndAbove...)
	products.Post("/", research, ctrl.CreateProduct)
	products.Put("/:id", research, ctrl.UpdateProduct)

	admin := authMw.OnlyRoles(constants.RoleErrorAdmin("delete catalog products"), constants.AdminOnly...)
	products.Delete("/:id", admin, ctrl.DeleteProduct)
}
