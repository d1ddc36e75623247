package controller

import (
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

	database "github.com/RonaldMark17/agridata-backend/internals/databases"
	"github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/model"
)

func setup(t *testing.T) (*gorm.DB, func(userID uint) *fiber.App) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	build := func(userID uint) *fiber.App {
		ctrl := NewNotificationController(db)
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			return c.Next()
		})
		app.Get("/notifications", ctrl.GetNotifications)
		app.Put("/notifications/read-all", ctrl.MarkAllRead)
		app.Put("/notifications/:id/read", ctrl.MarkRead)
		app.Delete("/notifications", ctrl.ClearNotifications)
		return app
	}
	return db, build
}

func notify(t *testing.T, db *gorm.DB, userID uint, title string) *model.NotificationModel {
	t.Helper()
	n := &model.NotificationModel{UserID: &userID, Title: title, Message: "m"}
	require.NoError(t, db.Create(n).Error)
	return n
}

func fetch(t *testing.T, app *fiber.App, method, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestNotificationsAreScopedToOwner(t *testing.T) {
	db, build := setup(t)
	notify(t, db, 1, "mine")
	notify(t, db, 2, "theirs")

	_, body := fetch(t, build(1), http.MethodGet, "/notifications")
	data := body["data"].(map[string]any)
	list := data["notifications"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].(map[string]any)["title"])
	assert.EqualValues(t, 1, data["unread_count"])
}

func TestMarkReadRejectsForeignRow(t *testing.T) {
	db, build := setup(t)
	theirs := notify(t, db, 2, "theirs")

	resp, _ := fetch(t, build(1), http.MethodPut, fmt.Sprintf("/notifications/%d/read", theirs.ID))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var row model.NotificationModel
	require.NoError(t, db.First(&row, theirs.ID).Error)
	assert.False(t, row.IsRead)
}

func TestMarkAllReadAndClear(t *testing.T) {
	db, build := setup(t)
	notify(t, db, 1, "a")
	notify(t, db, 1, "b")
	notify(t, db, 2, "other")

	app := build(1)
	resp, _ := fetch(t, app, http.MethodPut, "/notifications/read-all")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var unread int64
	db.Model(&model.NotificationModel{}).Where("user_id = ? AND is_read = ?", 1, false).Count(&unread)
	assert.Zero(t, unread)

	resp, _ = fetch(t, app, http.MethodDelete, "/notifications")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var mine, theirs int64
	db.Model(&model.NotificationModel{}).Where("user_id = ?", 1).Count(&mine)
	db.Model(&model.NotificationModel{}).Where("user_id = ?", 2).Count(&theirs)
	assert.Zero(t, mine)
	assert.EqualValues(t, 1, theirs, "other users' rows are untouched")
}

func TestFeedIsCappedAtTwenty(t *testing.T) {
	db, build := setup(t)
	for i := 0; i < 25; i++ {
		notify(t, db, 1, fmt.Sprintf("n%d", i))
	}

	_, body := fetch(t, build(1), http.MethodGet, "/notifications")
	data := body["data"].(map[string]any)
	assert.Len(t, data["notifications"].([]any), 20)
	assert.EqualValues(t, 25, data["unread_count"])
}
