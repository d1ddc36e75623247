package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	"github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func ExperienceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewExperienceController(db)

	experiences := api.Group("/experiences", authMw.AuthMiddleware(db))
	experiences.Get("/", ctrl.GetExperiences)
	experiences.Get("/:id", ctrl.GetExperience)

	// likes and comments are open to every authenticated role
	experiences.Post("/:id/like", ctrl.ToggleExperienceLike)
	experiences.Post("/:id/comments", ctrl.AddComment)
	experiences.Put("/:id/comments/:commentId", ctrl.UpdateComment)
	experiences.Delete("/:id/comments/:commentId", ctrl.DeleteComment)
	experiences.Post("/:id/comments/:commentId/like", ctrl.ToggleCommentLike)

	encoder := authMw.OnlyRoles(constants.RoleErrorEncoder("record experiences"), constants.EncoderAndAbove...)
	experiences.Post("/", encoder, ctrl.CreateExperience)
	experiences.Put("/:id", encoder, ctrl.UpdateExperience)

	admin := authMw.OnlyRoles(constants.RoleErrorAdmin("delete experiences"), constants.AdminOnly...)
	experiences.Delete("/:id", admin, ctrl.DeleteExperience)
}
