package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/RonaldMark17/agridata-backend/internals/databases"
	notificationModel "github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/model"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

type fixture struct {
	db          *gorm.DB
	interviewer *userModel.UserModel
	reader      *userModel.UserModel
	experience  *model.FarmerExperienceModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mkUser := func(username, role string) *userModel.UserModel {
		u := &userModel.UserModel{
			Username: username,
			Email:    username + "@example.com",
			Role:     role,
			IsActive: true,
		}
		require.NoError(t, u.SetPassword("secret123"))
		require.NoError(t, db.Create(u).Error)
		return u
	}
	interviewer := mkUser("interviewer", "data_encoder")
	reader := mkUser("reader", "viewer")

	barangay := struct {
		ID           uint
		Name         string
		Municipality string
		Province     string
		Region       string
	}{Name: "San Isidro", Municipality: "Baggao", Province: "Cagayan", Region: "II"}
	require.NoError(t, db.Table("barangays").Create(&barangay).Error)

	farmer := &farmerModel.FarmerModel{
		FirstName: "Juan", LastName: "Cruz", Age: 50, Gender: "Male",
		BarangayID: barangay.ID, EducationLevel: "Elementary",
	}
	require.NoError(t, db.Create(farmer).Error)

	experience := &model.FarmerExperienceModel{
		FarmerID:        farmer.ID,
		ExperienceType:  "Drought",
		Title:           "El Niño 2015",
		Description:     "Lost the second cropping",
		InterviewerID:   &interviewer.ID,
		CommentsEnabled: true,
	}
	require.NoError(t, db.Create(experience).Error)

	return &fixture{db: db, interviewer: interviewer, reader: reader, experience: experience}
}

func (f *fixture) appAs(u *userModel.UserModel) *fiber.App {
	ctrl := NewExperienceController(f.db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", u.ID)
		c.Locals("userRole", u.Role)
		c.Locals("user_name", u.Username)
		return c.Next()
	})
	app.Get("/experiences/:id", ctrl.GetExperience)
	app.Put("/experiences/:id", ctrl.UpdateExperience)
	app.Post("/experiences/:id/like", ctrl.ToggleExperienceLike)
	app.Post("/experiences/:id/comments", ctrl.AddComment)
	app.Put("/experiences/:id/comments/:commentId", ctrl.UpdateComment)
	app.Post("/experiences/:id/comments/:commentId/like", ctrl.ToggleCommentLike)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestLikeToggle(t *testing.T) {
	f := newFixture(t)
	app := f.appAs(f.reader)
	path := fmt.Sprintf("/experiences/%d/like", f.experience.ID)

	resp, body := do(t, app, http.MethodPost, path, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["liked"])
	assert.EqualValues(t, 1, data["likes_count"])

	resp, body = do(t, app, http.MethodPost, path, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Equal(t, false, data["liked"])
	assert.EqualValues(t, 0, data["likes_count"])
}

func TestCommentNotifiesInterviewerOnly(t *testing.T) {
	f := newFixture(t)
	app := f.appAs(f.reader)

	resp, _ := do(t, app, http.MethodPost,
		fmt.Sprintf("/experiences/%d/comments", f.experience.ID),
		`{"text":"We had the same drought here"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var rows []notificationModel.NotificationModel
	f.db.Find(&rows)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, f.interviewer.ID, *rows[0].UserID)
}

func TestCommentByInterviewerDoesNotSelfNotify(t *testing.T) {
	f := newFixture(t)
	app := f.appAs(f.interviewer)

	resp, _ := do(t, app, http.MethodPost,
		fmt.Sprintf("/experiences/%d/comments", f.experience.ID),
		`{"text":"Adding more context"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	f.db.Model(&notificationModel.NotificationModel{}).Count(&count)
	assert.Zero(t, count)
}

func TestCommentsDisabledBlocksNewComments(t *testing.T) {
	f := newFixture(t)

	resp, _ := do(t, f.appAs(f.interviewer), http.MethodPut,
		fmt.Sprintf("/experiences/%d", f.experience.ID),
		`{"comments_enabled":false}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = do(t, f.appAs(f.reader), http.MethodPost,
		fmt.Sprintf("/experiences/%d/comments", f.experience.ID),
		`{"text":"too late"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	f.db.Model(&model.ExperienceCommentModel{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateRequiresOwnerOrAdmin(t *testing.T) {
	f := newFixture(t)

	resp, _ := do(t, f.appAs(f.reader), http.MethodPut,
		fmt.Sprintf("/experiences/%d", f.experience.ID),
		`{"title":"Hijacked title"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var row model.FarmerExperienceModel
	require.NoError(t, f.db.First(&row, f.experience.ID).Error)
	assert.Equal(t, "El Niño 2015", row.Title)
}

func TestCommentEditIsAuthorOrAdminOnly(t *testing.T) {
	f := newFixture(t)

	comment := &model.ExperienceCommentModel{
		ExperienceID: f.experience.ID,
		UserID:       f.reader.ID,
		Text:         "original wording",
	}
	require.NoError(t, f.db.Create(comment).Error)
	path := fmt.Sprintf("/experiences/%d/comments/%d", f.experience.ID, comment.ID)

	// a different non-admin user cannot touch it
	resp, _ := do(t, f.appAs(f.interviewer), http.MethodPut, path, `{"text":"rewritten"}`)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var kept model.ExperienceCommentModel
	require.NoError(t, f.db.First(&kept, comment.ID).Error)
	assert.Equal(t, "original wording", kept.Text)

	// the author may edit
	resp, body := do(t, f.appAs(f.reader), http.MethodPut, path, `{"text":"rewritten"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "rewritten", data["text"])
}

func TestCommentLikeChecksExperiencePairing(t *testing.T) {
	f := newFixture(t)
	app := f.appAs(f.reader)

	comment := &model.ExperienceCommentModel{
		ExperienceID: f.experience.ID,
		UserID:       f.interviewer.ID,
		Text:         "We saw the same thing upland",
	}
	require.NoError(t, f.db.Create(comment).Error)

	// a comment id paired with the wrong experience is not addressable
	wrong := fmt.Sprintf("/experiences/%d/comments/%d/like", f.experience.ID+99, comment.ID)
	resp, _ := do(t, app, http.MethodPost, wrong, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var likes int64
	f.db.Table("comment_likes").Where("comment_id = ?", comment.ID).Count(&likes)
	require.Zero(t, likes)

	path := fmt.Sprintf("/experiences/%d/comments/%d/like", f.experience.ID, comment.ID)
	resp, body := do(t, app, http.MethodPost, path, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["liked"])
	assert.EqualValues(t, 1, data["likes_count"])

	resp, body = do(t, app, http.MethodPost, path, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Equal(t, false, data["liked"])
}

func TestDetailIncludesLikeStateAndComments(t *testing.T) {
	f := newFixture(t)
	app := f.appAs(f.reader)

	_, _ = do(t, app, http.MethodPost, fmt.Sprintf("/experiences/%d/like", f.experience.ID), "")
	_, _ = do(t, app, http.MethodPost,
		fmt.Sprintf("/experiences/%d/comments", f.experience.ID), `{"text":"first"}`)

	resp, body := do(t, app, http.MethodGet, fmt.Sprintf("/experiences/%d", f.experience.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_liked_by_me"])
	assert.EqualValues(t, 1, data["likes_count"])
	comments := data["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].(map[string]any)["text"])
	assert.Equal(t, "reader", comments[0].(map[string]any)["author_name"])
}
