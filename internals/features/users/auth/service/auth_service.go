package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	authDTO "github.com/RonaldMark17/agridata-backend/internals/features/users/auth/dto"
	authModel "github.com/RonaldMark17/agridata-backend/internals/features/users/auth/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
	helpers "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

const otpTTL = 5 * time.Minute

var validate = validator.New()

/* ==========================
   Register / Login
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	role := req.Role
	if role == "" {
		role = constants.RoleViewer
	}
	if !constants.IsValidRole(role) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Unknown role")
	}

	var count int64
	db.Model(&userModel.UserModel{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Username already exists")
	}
	db.Model(&userModel.UserModel{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Email already exists")
	}

	user := userModel.UserModel{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		Role:           role,
		OrganizationID: req.Organization,
		IsActive:       true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.Create(&user).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "User created successfully", user)
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	user, err := findByUsernameOrEmail(db, req.Username)
	if err != nil || !user.CheckPassword(strings.TrimSpace(req.Password)) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account is disabled. Contact admin.")
	}

	if user.OTPEnabled {
		code, err := generateOTP()
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to generate security code")
		}
		expiry := time.Now().UTC().Add(otpTTL)
		if err := db.Model(user).Updates(map[string]any{
			"otp_code":   code,
			"otp_expiry": expiry,
		}).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to store security code")
		}

		// best-effort delivery, after the code is committed
		if err := getMailer().Send(user.Email, "AgriData Security Code", otpEmailBody(code)); err != nil {
			log.Printf("[ERROR] Failed to send OTP mail: %v", err)
		}

		return helpers.JsonOK(c, "OTP sent", fiber.Map{"otp_required": true})
	}

	return issueTokens(db, c, user)
}

// VerifyLoginOTP exchanges username + the mailed code for tokens.
func VerifyLoginOTP(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	user, err := findByUsernameOrEmail(db, req.Username)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User session not found")
	}
	if user.OTPCode == nil || *user.OTPCode != strings.TrimSpace(req.OTP) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid security code")
	}
	if user.OTPExpiry == nil || time.Now().UTC().After(*user.OTPExpiry) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Security code has expired")
	}

	// single use
	if err := db.Model(user).Updates(map[string]any{
		"otp_code":   nil,
		"otp_expiry": nil,
	}).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to clear security code")
	}

	return issueTokens(db, c, user)
}

func ToggleOTP(db *gorm.DB, c *fiber.Ctx) error {
	user, err := helperAuth.GetCurrentUser(c, db)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req authDTO.ToggleOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := db.Model(user).Update("otp_enabled", req.Enabled).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update OTP setting")
	}
	return helpers.JsonOK(c, "OTP setting updated", fiber.Map{"otp_enabled": req.Enabled})
}

func issueTokens(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel) error {
	accessToken, err := CreateAccessToken(user)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	refreshToken, err := CreateRefreshToken(user)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	activityService.NewActivityService(db).Log(c, &user.ID,
		"LOGIN_SUCCESS", "User", user.ID,
		fmt.Sprintf("User %s logged in", user.Username))

	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
		"otp_required":  false,
	})
}

/* ==========================
   Session maintenance
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	tokenString, err := extractBearer(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	claims, err := ParseToken(tokenString, "refresh")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}
	if revoked, err := isRevoked(db, claims["jti"]); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	} else if revoked {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token has been revoked")
	}

	userID, err := TokenSubject(claims)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	var user userModel.UserModel
	if err := db.First(&user, userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account is disabled. Contact admin.")
	}

	accessToken, err := CreateAccessToken(&user)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helpers.JsonOK(c, "Token refreshed", fiber.Map{"access_token": accessToken})
}

// Logout revokes whichever token (access or refresh) the client presents.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tokenString, err := extractBearer(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	claims, err := ParseToken(tokenString, "access")
	tokenType := "access"
	if err != nil {
		claims, err = ParseToken(tokenString, "refresh")
		tokenType = "refresh"
	}
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Token has no revocation id")
	}
	if err := db.Create(&authModel.TokenBlocklist{JTI: jti}).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}

	if userID, err := TokenSubject(claims); err == nil {
		var user userModel.UserModel
		if err := db.First(&user, userID).Error; err == nil {
			activityService.NewActivityService(db).Log(c, &user.ID,
				"LOGOUT_SUCCESS", "User", user.ID,
				fmt.Sprintf("User %s successfully terminated session", user.Username))
		}
	}

	return helpers.JsonOK(c, fmt.Sprintf("%s token successfully revoked", strings.ToUpper(tokenType[:1])+tokenType[1:]), nil)
}

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	user, err := helperAuth.GetCurrentUser(c, db)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}
	if !user.CheckPassword(req.OldPassword) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helpers.JsonOK(c, "Password updated", nil)
}

/* ==========================
   Password recovery (persisted OTP)
========================== */

func ForgotPassword(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "No account found for that email")
	}

	code, err := generateOTP()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to generate security code")
	}

	// one live code per email
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", user.Email).Delete(&authModel.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Create(&authModel.PasswordReset{
			Email:     user.Email,
			Code:      code,
			ExpiresAt: time.Now().UTC().Add(otpTTL),
		}).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to store security code")
	}

	if err := getMailer().Send(user.Email, "AgriData Password Recovery", otpEmailBody(code)); err != nil {
		log.Printf("[ERROR] Failed to send recovery mail: %v", err)
	}
	return helpers.JsonOK(c, "Recovery code sent", nil)
}

func VerifyResetOTP(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.VerifyResetOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	if _, err := liveResetRow(db, req.Email, req.OTP); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	return helpers.JsonOK(c, "Code verified", nil)
}

func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		row, err := liveResetRow(tx, req.Email, req.OTP)
		if err != nil {
			return err
		}

		var user userModel.UserModel
		if err := tx.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error; err != nil {
			return errors.New("No account found for that email")
		}
		if err := user.SetPassword(req.NewPassword); err != nil {
			return err
		}
		if err := tx.Model(&user).Update("password_hash", user.PasswordHash).Error; err != nil {
			return err
		}
		// the code is single-use
		return tx.Delete(row).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	return helpers.JsonOK(c, "Password has been reset", nil)
}

/* ==========================
   Small helpers
========================== */

func findByUsernameOrEmail(db *gorm.DB, ident string) (*userModel.UserModel, error) {
	ident = strings.TrimSpace(ident)
	var user userModel.UserModel
	err := db.Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", ident, ident).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func liveResetRow(db *gorm.DB, email, code string) (*authModel.PasswordReset, error) {
	var row authModel.PasswordReset
	err := db.Where("LOWER(email) = LOWER(?) AND code = ?", strings.TrimSpace(email), strings.TrimSpace(code)).
		First(&row).Error
	if err != nil {
		return nil, errors.New("Invalid security code")
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return nil, errors.New("Security code has expired")
	}
	return &row, nil
}

func isRevoked(db *gorm.DB, jtiClaim any) (bool, error) {
	jti, _ := jtiClaim.(string)
	if jti == "" {
		return false, nil
	}
	var count int64
	if err := db.Model(&authModel.TokenBlocklist{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func extractBearer(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("Missing or malformed Authorization header")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errors.New("Empty bearer token")
	}
	return token, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
