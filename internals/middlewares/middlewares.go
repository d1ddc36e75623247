package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
}
