package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/RonaldMark17/agridata-backend/internals/databases"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	productModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedFarmer(t *testing.T, db *gorm.DB) *model.FarmerModel {
	t.Helper()
	barangay := struct {
		ID           uint
		Name         string
		Municipality string
		Province     string
		Region       string
	}{Name: "San Isidro", Municipality: "Baggao", Province: "Cagayan", Region: "II"}
	require.NoError(t, db.Table("barangays").Create(&barangay).Error)

	farmer := &model.FarmerModel{
		FirstName:      "Juan",
		LastName:       "Dela Cruz",
		Age:            52,
		Gender:         "Male",
		BarangayID:     barangay.ID,
		EducationLevel: "Elementary",
	}
	require.NoError(t, db.Create(farmer).Error)
	return farmer
}

func TestDeriveAge(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("birthday passed this year", func(t *testing.T) {
		born := time.Date(1980, time.March, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 46, DeriveAge(born, now))
	})

	t.Run("birthday later this year", func(t *testing.T) {
		born := time.Date(1980, time.December, 25, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 45, DeriveAge(born, now))
	})

	t.Run("same month day not reached", func(t *testing.T) {
		born := time.Date(1980, time.June, 16, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 45, DeriveAge(born, now))
	})

	t.Run("birthday today", func(t *testing.T) {
		born := time.Date(1980, time.June, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 46, DeriveAge(born, now))
	})

	t.Run("future birth date clamps to zero", func(t *testing.T) {
		born := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, DeriveAge(born, now))
	})
}

func TestResolveAge(t *testing.T) {
	born := time.Now().AddDate(-40, 0, -1)
	assert.Equal(t, 40, ResolveAge(&born, 99), "birth date wins over reported age")
	assert.Equal(t, 33, ResolveAge(nil, 33))
	assert.Equal(t, 0, ResolveAge(nil, -5))
}

func TestGetOrCreateProduct(t *testing.T) {
	db := openTestDB(t)

	first, err := GetOrCreateProduct(db, "Rice")
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	assert.Equal(t, "Crop", first.Category, "implicit creation files the product as a crop")

	again, err := GetOrCreateProduct(db, "  rice ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "lookup is case-insensitive and trimmed")

	var count int64
	db.Model(&productModel.AgriculturalProductModel{}).Count(&count)
	assert.EqualValues(t, 1, count)

	_, err = GetOrCreateProduct(db, "   ")
	assert.Error(t, err)
}

func TestReplaceProducts(t *testing.T) {
	db := openTestDB(t)
	farmer := seedFarmer(t, db)

	volume := 120.5
	require.NoError(t, ReplaceProducts(db, farmer.ID, []dto.FarmerProductInput{
		{ProductName: "Rice", ProductionVolume: &volume, Unit: "sacks", IsPrimary: true},
		{ProductName: "Corn", Unit: "kg"},
	}))

	var rows []model.FarmerProductModel
	db.Where("farmer_id = ?", farmer.ID).Find(&rows)
	require.Len(t, rows, 2)

	// second call replaces, reusing the existing Rice row
	require.NoError(t, ReplaceProducts(db, farmer.ID, []dto.FarmerProductInput{
		{ProductName: "RICE", Unit: "sacks"},
	}))
	db.Where("farmer_id = ?", farmer.ID).Find(&rows)
	require.Len(t, rows, 1)

	var products int64
	db.Model(&productModel.AgriculturalProductModel{}).Count(&products)
	assert.EqualValues(t, 2, products, "catalog keeps both products")

	// blank names are skipped, empty list clears
	require.NoError(t, ReplaceProducts(db, farmer.ID, []dto.FarmerProductInput{{ProductName: "  "}}))
	db.Where("farmer_id = ?", farmer.ID).Find(&rows)
	assert.Empty(t, rows)
}

func TestAppendProducts(t *testing.T) {
	db := openTestDB(t)
	farmer := seedFarmer(t, db)

	require.NoError(t, ReplaceProducts(db, farmer.ID, []dto.FarmerProductInput{
		{ProductName: "Rice", Unit: "sacks", IsPrimary: true},
	}))

	require.NoError(t, AppendProducts(db, farmer.ID, []dto.FarmerProductInput{
		{ProductName: "rice", Unit: "kg"},
		{ProductName: "Corn", Unit: "kg"},
	}))

	var rows []model.FarmerProductModel
	db.Where("farmer_id = ?", farmer.ID).Order("id").Find(&rows)
	require.Len(t, rows, 2, "already linked product is not duplicated")

	// the original Rice link keeps its attributes
	assert.True(t, rows[0].IsPrimary)
	assert.Equal(t, "sacks", rows[0].Unit)
}

func TestDeleteFarmerCascade(t *testing.T) {
	db := openTestDB(t)
	farmer := seedFarmer(t, db)

	require.NoError(t, ReplaceProducts(db, farmer.ID, []dto.FarmerProductInput{{ProductName: "Rice"}}))

	name := "Maria"
	require.NoError(t, db.Create(&model.FarmerChildModel{
		FarmerID:         farmer.ID,
		Name:             &name,
		InvolvementLevel: "None",
	}).Error)

	require.NoError(t, db.Exec(
		"INSERT INTO farmer_experiences (farmer_id, experience_type, title, description, comments_enabled, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		farmer.ID, "Drought", "El Niño 2015", "Lost the second cropping", true, time.Now(), time.Now(),
	).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return DeleteFarmerCascade(tx, farmer.ID)
	}))

	var farmers, products, children, experiences int64
	db.Model(&model.FarmerModel{}).Count(&farmers)
	db.Model(&model.FarmerProductModel{}).Count(&products)
	db.Model(&model.FarmerChildModel{}).Count(&children)
	db.Table("farmer_experiences").Count(&experiences)

	assert.Zero(t, farmers)
	assert.Zero(t, products)
	assert.Zero(t, children)
	assert.Zero(t, experiences)
}
