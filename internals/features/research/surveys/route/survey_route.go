package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func SurveyRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSurveyController(db)

	surveys := api.Group("/surveys", authMw.AuthMiddleware(db))
	surveys.Get("/", ctrl.GetSurveys)
	surveys.Get("/:id", ctrl.GetSurvey)

	research := authMw.OnlyRoles(constants.RoleErrorResearch("manage survey questionnaires"), constants.ResearcherAndAbove...)
	surveys.Post("/", research, ctrl.CreateSurvey)
	surveys.Put("/:id", research, ctrl.UpdateSurvey)

	admin := authMw.OnlyRoles(constants.RoleErrorAdmin("delete survey questionnaires"), constants.AdminOnly...)
	surveys.Delete("/:id", admin, ctrl.DeleteSurvey)
}
