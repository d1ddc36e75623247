package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/features/users/auth/controller"
	authMw "github.com/RonaldMark17/agridata-backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")

	// public
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", ctrl.Login)
	auth.Post("/verify-otp", ctrl.VerifyLoginOTP)
	auth.Post("/forgot-password", ctrl.ForgotPassword)
	auth.Post("/verify-otp-reset", ctrl.VerifyResetOTP)
	auth.Post("/reset-password", ctrl.ResetPassword)

	// token carried in Authorization but no user lookup needed
	auth.Post("/refresh", ctrl.RefreshToken)
	auth.Post("/logout", ctrl.Logout)

	// authenticated
	auth.Get("/me", authMw.AuthMiddleware(db), ctrl.Me)
	auth.Post("/toggle-otp", authMw.AuthMiddleware(db), ctrl.ToggleOTP)
	auth.Post("/change-password", authMw.AuthMiddleware(db), ctrl.ChangePassword)
}
