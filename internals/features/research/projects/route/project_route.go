package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/research/projects/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func ProjectRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProjectController(db)

	projects := api.Group("/projects", authMw.AuthMiddleware(db))
	projects.Get("/", ctrl.GetProjects)
	projects.Get("/:id", ctrl.GetProject)

	research := authMw.OnlyRoles(constants.RoleErrorResearch("manage research projects"), constants.ResearcherAndAbove...)
	projects.Post("/", research, ctrl.CreateProject)
	projects.Put("/:id", research, ctrl.UpdateProject)

	admin := authMw.OnlyRoles(constants.RoleErrorAdmin("delete research projects"), constants.AdminOnly...)
	projects.Delete("/:id", admin, ctrl.DeleteProject)
}
