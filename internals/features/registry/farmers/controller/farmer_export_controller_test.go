package controller

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
)

func TestExportFarmersCSV(t *testing.T) {
	env := newTestEnv(t)
	env.app.Get("/farmers-export", NewFarmerController(env.db).ExportFarmers)

	code := "FRM-001"
	years := 27
	require.NoError(t, env.db.Create(&model.FarmerModel{
		FarmerCode: &code, FirstName: "Juan", LastName: "Dela Cruz", Age: 52,
		Gender: "Male", BarangayID: env.barangayID, EducationLevel: "Elementary",
		YearsFarming: &years,
	}).Error)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/farmers-export", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "farmers_export_")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])

	row := records[1]
	assert.Equal(t, "FRM-001", row[0])
	assert.Equal(t, "Juan", row[1])
	assert.Equal(t, "Dela Cruz", row[2])
	assert.Equal(t, "52", row[3])
	assert.Equal(t, "San Isidro", row[6])
	assert.Equal(t, "Baggao", row[7])
	assert.Equal(t, "Cagayan", row[8])
	assert.Equal(t, "27", row[11])
}

func TestExportFarmersXLSX(t *testing.T) {
	env := newTestEnv(t)
	env.app.Get("/farmers-export", NewFarmerController(env.db).ExportFarmers)

	require.NoError(t, env.db.Create(&model.FarmerModel{
		FirstName: "Juan", LastName: "Dela Cruz", Age: 52,
		Gender: "Male", BarangayID: env.barangayID, EducationLevel: "Elementary",
	}).Error)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/farmers-export?format=xlsx", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.True(t, strings.HasSuffix(
		strings.TrimSuffix(resp.Header.Get("Content-Disposition"), `"`), ".xlsx"))
}
