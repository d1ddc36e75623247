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
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
)

func productApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	ctrl := NewProductController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("userRole", "admin")
		c.Locals("user_name", "admin")
		return c.Next()
	})
	app.Put("/products/:id", ctrl.UpdateProduct)
	app.Delete("/products/:id", ctrl.DeleteProduct)
	return app, db
}

func productRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
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

func TestUpdateProductRejectsDuplicateName(t *testing.T) {
	app, db := productApp(t)
	rice := model.AgriculturalProductModel{Name: "Rice", Category: "Crop"}
	corn := model.AgriculturalProductModel{Name: "Corn", Category: "Crop"}
	require.NoError(t, db.Create(&rice).Error)
	require.NoError(t, db.Create(&corn).Error)

	resp, body := productRequest(t, app, http.MethodPut,
		fmt.Sprintf("/products/%d", corn.ID), `{"name":"rice"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product name already exists", body["message"])

	require.NoError(t, db.First(&corn, corn.ID).Error)
	assert.Equal(t, "Corn", corn.Name)

	// renaming only the casing of its own name is not a duplicate
	resp, _ = productRequest(t, app, http.MethodPut,
		fmt.Sprintf("/products/%d", corn.ID), `{"name":"CORN","category":"Grain"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&corn, corn.ID).Error)
	assert.Equal(t, "CORN", corn.Name)
	assert.Equal(t, "Grain", corn.Category)
}

func TestDeleteProductBlockedWhileLinked(t *testing.T) {
	app, db := productApp(t)

	barangay := struct {
		ID           uint
		Name         string
		Municipality string
		Province     string
		Region       string
	}{Name: "San Isidro", Municipality: "Baggao", Province: "Cagayan", Region: "II"}
	require.NoError(t, db.Table("barangays").Create(&barangay).Error)

	farmer := farmerModel.FarmerModel{
		FirstName: "Juan", LastName: "Dela Cruz", Age: 50, Gender: "Male",
		BarangayID: barangay.ID, EducationLevel: "Elementary",
	}
	require.NoError(t, db.Create(&farmer).Error)

	rice := model.AgriculturalProductModel{Name: "Rice", Category: "Crop"}
	require.NoError(t, db.Create(&rice).Error)
	require.NoError(t, db.Create(&farmerModel.FarmerProductModel{
		FarmerID: farmer.ID, ProductID: rice.ID, Unit: "sacks",
	}).Error)

	resp, body := productRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/products/%d", rice.ID), "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "linked to existing farmer records")

	var kept int64
	db.Model(&model.AgriculturalProductModel{}).Count(&kept)
	require.EqualValues(t, 1, kept)

	// unlink, then the delete goes through
	require.NoError(t, db.Exec("DELETE FROM farmer_products WHERE product_id = ?", rice.ID).Error)
	resp, _ = productRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/products/%d", rice.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.Model(&model.AgriculturalProductModel{}).Count(&kept)
	assert.Zero(t, kept)
}
