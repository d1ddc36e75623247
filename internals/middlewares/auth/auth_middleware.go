// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/configs"
	authModel "github.com/RonaldMark17/agridata-backend/internals/features/users/auth/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

// AuthMiddleware verifies the bearer access token, rejects revoked tokens,
// requires the account to still exist and be active, and stores identity
// info in c.Locals for the handlers.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := ExtractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		if typ, _ := claims["type"].(string); typ != "access" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Access token required")
		}

		// Revocation check by jti (logout writes to the blocklist)
		if jti, _ := claims["jti"].(string); jti != "" {
			var revoked authModel.TokenBlocklist
			if err := db.Where("jti = ?", jti).First(&revoked).Error; err == nil {
				log.Println("[WARNING] Token found in blocklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token has been revoked")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error during blocklist check:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		var user userModel.UserModel
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Account is disabled. Contact admin.")
		}

		c.Locals("user_id", user.ID)
		c.Locals("userRole", user.Role)
		c.Locals("user_name", user.FullName)

		return c.Next()
	}
}

func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", errors.New("Unauthorized - Missing Authorization header")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("Unauthorized - Invalid Authorization header format")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errors.New("Unauthorized - Empty bearer token")
	}
	return token, nil
}

func extractUserID(claims jwt.MapClaims) (uint, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return 0, errors.New("missing sub claim")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid sub claim")
	}
	return uint(id), nil
}
