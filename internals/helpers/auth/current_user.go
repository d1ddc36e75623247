package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

// GetUserID returns the authenticated user's id stashed by the auth
// middleware.
func GetUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals("user_id").(uint)
	if !ok || id == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Missing user identity in context")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

// GetCurrentUser loads the caller's full record. Handlers that need the
// caller's name (notification messages, audit details) use this.
func GetCurrentUser(c *fiber.Ctx, db *gorm.DB) (*userModel.UserModel, error) {
	id, err := GetUserID(c)
	if err != nil {
		return nil, err
	}
	var user userModel.UserModel
	if err := db.First(&user, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	return &user, nil
}
