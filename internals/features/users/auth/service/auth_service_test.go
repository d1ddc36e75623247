package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RonaldMark17/agridata-backend/internals/configs"
	database "github.com/RonaldMark17/agridata-backend/internals/databases"
	authModel "github.com/RonaldMark17/agridata-backend/internals/features/users/auth/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

type captureMailer struct {
	sent []capturedMail
}

func (m *captureMailer) Send(to, subject, htmlBody string) error {
	m.sent = append(m.sent, capturedMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error { return Register(db, c) })
	app.Post("/login", func(c *fiber.Ctx) error { return Login(db, c) })
	app.Post("/verify-otp", func(c *fiber.Ctx) error { return VerifyLoginOTP(db, c) })
	app.Post("/refresh", func(c *fiber.Ctx) error { return RefreshToken(db, c) })
	app.Post("/logout", func(c *fiber.Ctx) error { return Logout(db, c) })
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, username string) {
	t.Helper()
	resp, _ := postJSON(t, app, "/register", fiber.Map{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "secret123",
		"full_name": "Test User",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	app, _ := setupAuthApp(t)
	registerUser(t, app, "juan")

	resp, body := postJSON(t, app, "/register", fiber.Map{
		"username":  "juan",
		"email":     "other@example.com",
		"password":  "secret123",
		"full_name": "Someone Else",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already exists", body["message"])

	resp, body = postJSON(t, app, "/register", fiber.Map{
		"username":  "pedro",
		"email":     "juan@example.com",
		"password":  "secret123",
		"full_name": "Someone Else",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists", body["message"])
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app, _ := setupAuthApp(t)
	resp, _ := postJSON(t, app, "/register", fiber.Map{
		"username":  "juan",
		"email":     "juan@example.com",
		"password":  "secret123",
		"full_name": "Juan",
		"role":      "superuser",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPasswordNeverIssuesToken(t *testing.T) {
	app, _ := setupAuthApp(t)
	registerUser(t, app, "juan")

	for i := 0; i < 2; i++ {
		resp, body := postJSON(t, app, "/login", fiber.Map{
			"username": "juan",
			"password": "wrong-password",
		}, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", body["message"])
		assert.Nil(t, body["data"])
	}
}

func TestLoginAcceptsEmailCaseInsensitive(t *testing.T) {
	app, _ := setupAuthApp(t)
	registerUser(t, app, "juan")

	resp, body := postJSON(t, app, "/login", fiber.Map{
		"username": "JUAN@Example.COM",
		"password": "secret123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
	assert.Equal(t, false, data["otp_required"])
}

func TestLoginInactiveAccountForbidden(t *testing.T) {
	app, db := setupAuthApp(t)
	registerUser(t, app, "juan")
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("username = ?", "juan").Update("is_active", false).Error)

	resp, _ := postJSON(t, app, "/login", fiber.Map{
		"username": "juan",
		"password": "secret123",
	}, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOTPLoginFlow(t *testing.T) {
	app, db := setupAuthApp(t)
	registerUser(t, app, "juan")
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("username = ?", "juan").Update("otp_enabled", true).Error)

	mailer := &captureMailer{}
	SetMailer(mailer)
	defer SetMailer(nil)

	resp, body := postJSON(t, app, "/login", fiber.Map{
		"username": "juan",
		"password": "secret123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["otp_required"])
	assert.Nil(t, data["access_token"])
	require.Len(t, mailer.sent, 1)

	var user userModel.UserModel
	require.NoError(t, db.Where("username = ?", "juan").First(&user).Error)
	require.NotNil(t, user.OTPCode)

	resp, body = postJSON(t, app, "/verify-otp", fiber.Map{
		"username": "juan",
		"otp":      *user.OTPCode,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])

	// single use
	resp, _ = postJSON(t, app, "/verify-otp", fiber.Map{
		"username": "juan",
		"otp":      "000000",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRequiresRefreshToken(t *testing.T) {
	app, _ := setupAuthApp(t)
	registerUser(t, app, "juan")

	_, body := postJSON(t, app, "/login", fiber.Map{
		"username": "juan",
		"password": "secret123",
	}, "")
	data := body["data"].(map[string]any)
	access := data["access_token"].(string)
	refresh := data["refresh_token"].(string)

	resp, _ := postJSON(t, app, "/refresh", fiber.Map{}, access)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "access token is not accepted for refresh")

	resp, body = postJSON(t, app, "/refresh", fiber.Map{}, refresh)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"].(map[string]any)["access_token"])
}

func TestLogoutBlocklistsToken(t *testing.T) {
	app, db := setupAuthApp(t)
	registerUser(t, app, "juan")

	_, body := postJSON(t, app, "/login", fiber.Map{
		"username": "juan",
		"password": "secret123",
	}, "")
	refresh := body["data"].(map[string]any)["refresh_token"].(string)

	resp, _ := postJSON(t, app, "/logout", fiber.Map{}, refresh)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&authModel.TokenBlocklist{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// revoked refresh token can no longer mint access tokens
	resp, _ = postJSON(t, app, "/refresh", fiber.Map{}, refresh)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
