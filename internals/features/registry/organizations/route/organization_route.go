package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func OrganizationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewOrganizationController(db)

	orgs := api.Group("/organizations", authMw.AuthMiddleware(db))
	orgs.Get("/", ctrl.GetOrganizations)
	orgs.Get("/:id", ctrl.GetOrganization)

	admin := authMw.OnlyRoles(constants.RoleErrorAdmin("manage organizations"), constants.AdminOnly...)
	orgs.Post("/", admin, ctrl.CreateOrganization)
	orgs.Put("/:id", admin, ctrl.UpdateOrganization)
	orgs.Delete("/:id", admin, ctrl.DeleteOrganization)
}
