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
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
)

func dashboardApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	ctrl := NewDashboardController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	})
	app.Get("/dashboard", ctrl.GetDashboard)
	return app, db
}

func getDashboard(t *testing.T, app *fiber.App, query string) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard"+query, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded["data"].(map[string]any)
}

func TestDashboardEmptyRegistryReportsZeroAverages(t *testing.T) {
	app, _ := dashboardApp(t)
	data := getDashboard(t, app, "")

	totals := data["totals"].(map[string]any)
	assert.EqualValues(t, 0, totals["farmers"])

	averages := data["averages"].(map[string]any)
	assert.EqualValues(t, 0, averages["age"])
	assert.EqualValues(t, 0, averages["farm_size_hectares"])
	assert.EqualValues(t, 0, averages["annual_income"])

	summary := data["summary_analysis"].(map[string]any)
	assert.EqualValues(t, 0, summary["succession_rate_percent"])
	assert.Equal(t, "N/A", summary["top_education_level"])
	assert.Equal(t, "N/A", summary["most_populated_barangay"])
}

func TestDashboardAggregates(t *testing.T) {
	app, db := dashboardApp(t)

	barangay := struct {
		ID           uint
		Name         string
		Municipality string
		Province     string
		Region       string
	}{Name: "San Isidro", Municipality: "Baggao", Province: "Cagayan", Region: "II"}
	require.NoError(t, db.Table("barangays").Create(&barangay).Error)

	size1, size2 := 2.0, 4.0
	farmers := []farmerModel.FarmerModel{
		{FirstName: "Juan", LastName: "Cruz", Age: 40, Gender: "Male", BarangayID: barangay.ID,
			EducationLevel: "Elementary", FarmSizeHectares: &size1, ChildrenFarmingInvolvement: true},
		{FirstName: "Maria", LastName: "Reyes", Age: 60, Gender: "Female", BarangayID: barangay.ID,
			EducationLevel: "High School", FarmSizeHectares: &size2},
	}
	require.NoError(t, db.Create(&farmers).Error)

	data := getDashboard(t, app, "?range=all")

	totals := data["totals"].(map[string]any)
	assert.EqualValues(t, 2, totals["farmers"])
	assert.EqualValues(t, 1, totals["barangays"])

	averages := data["averages"].(map[string]any)
	assert.InDelta(t, 50.0, averages["age"].(float64), 0.001)
	assert.InDelta(t, 3.0, averages["farm_size_hectares"].(float64), 0.001)

	assert.Len(t, data["education_breakdown"].([]any), 2)

	top := data["top_barangays"].([]any)
	require.Len(t, top, 1)
	first := top[0].(map[string]any)
	assert.Equal(t, "San Isidro", first["label"])
	assert.EqualValues(t, 2, first["count"])

	summary := data["summary_analysis"].(map[string]any)
	assert.InDelta(t, 50.0, summary["succession_rate_percent"].(float64), 0.001)
	assert.Equal(t, "San Isidro", summary["most_populated_barangay"])
}

func TestDashboardMonthWindowExcludesOldRows(t *testing.T) {
	app, db := dashboardApp(t)

	barangay := struct {
		ID           uint
		Name         string
		Municipality string
		Province     string
		Region       string
	}{Name: "San Isidro", Municipality: "Baggao", Province: "Cagayan", Region: "II"}
	require.NoError(t, db.Table("barangays").Create(&barangay).Error)

	old := farmerModel.FarmerModel{FirstName: "Old", LastName: "Timer", Age: 70, Gender: "Male",
		BarangayID: barangay.ID, EducationLevel: "Elementary"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).
		Update("created_at", gorm.Expr("datetime('now', '-2 months')")).Error)

	fresh := farmerModel.FarmerModel{FirstName: "New", LastName: "Comer", Age: 30, Gender: "Male",
		BarangayID: barangay.ID, EducationLevel: "College"}
	require.NoError(t, db.Create(&fresh).Error)

	data := getDashboard(t, app, "?range=month")
	totals := data["totals"].(map[string]any)
	assert.EqualValues(t, 1, totals["farmers"])
}
