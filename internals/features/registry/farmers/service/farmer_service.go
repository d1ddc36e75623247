package service

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	productModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
)

// DeriveAge computes whole years between birthDate and now, counting the
// birthday itself as already reached.
func DeriveAge(birthDate time.Time, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// ResolveAge prefers the birth date over a self-reported age.
func ResolveAge(birthDate *time.Time, reportedAge int) int {
	if birthDate != nil {
		return DeriveAge(*birthDate, time.Now())
	}
	if reportedAge < 0 {
		return 0
	}
	return reportedAge
}

// GetOrCreateProduct resolves a product by case-insensitive name inside the
// caller's transaction, creating it when missing. Concurrent creates of the
// same name are absorbed by the unique LOWER(name) index plus the retry read.
func GetOrCreateProduct(tx *gorm.DB, name string) (*productModel.AgriculturalProductModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name is empty")
	}

	var product productModel.AgriculturalProductModel
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&product).Error
	if err == nil {
		return &product, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	product = productModel.AgriculturalProductModel{
		Name:     name,
		Category: "Crop",
	}
	create := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&product)
	if create.Error != nil {
		return nil, create.Error
	}
	if create.RowsAffected == 0 {
		// lost the insert race: re-read the winner
		if err := tx.Where("LOWER(name) = LOWER(?)", name).First(&product).Error; err != nil {
			return nil, err
		}
	}
	return &product, nil
}

// ReplaceProducts swaps the farmer's full product set inside tx. An empty
// input list clears the set.
func ReplaceProducts(tx *gorm.DB, farmerID uint, inputs []dto.FarmerProductInput) error {
	if err := tx.Where("farmer_id = ?", farmerID).Delete(&model.FarmerProductModel{}).Error; err != nil {
		return err
	}
	for _, in := range inputs {
		if strings.TrimSpace(in.ProductName) == "" {
			continue
		}
		product, err := GetOrCreateProduct(tx, in.ProductName)
		if err != nil {
			return err
		}
		row := model.FarmerProductModel{
			FarmerID:         farmerID,
			ProductID:        product.ID,
			ProductionVolume: in.ProductionVolume,
			Unit:             strings.TrimSpace(in.Unit),
			IsPrimary:        in.IsPrimary,
			SellingPrice:     in.SellingPrice,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// AppendProducts links additional products to a farmer without touching the
// existing set. A product already linked keeps its current row.
func AppendProducts(tx *gorm.DB, farmerID uint, inputs []dto.FarmerProductInput) error {
	for _, in := range inputs {
		if strings.TrimSpace(in.ProductName) == "" {
			continue
		}
		product, err := GetOrCreateProduct(tx, in.ProductName)
		if err != nil {
			return err
		}
		var existing int64
		if err := tx.Model(&model.FarmerProductModel{}).
			Where("farmer_id = ? AND product_id = ?", farmerID, product.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			continue
		}
		row := model.FarmerProductModel{
			FarmerID:         farmerID,
			ProductID:        product.ID,
			ProductionVolume: in.ProductionVolume,
			Unit:             strings.TrimSpace(in.Unit),
			IsPrimary:        in.IsPrimary,
			SellingPrice:     in.SellingPrice,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteFarmerCascade removes the farmer with dependent rows. Join, child
// and experience rows go first so the delete also works on databases where
// the FK cascade clauses were not materialized.
func DeleteFarmerCascade(tx *gorm.DB, farmerID uint) error {
	if err := tx.Where("farmer_id = ?", farmerID).Delete(&model.FarmerProductModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("farmer_id = ?", farmerID).Delete(&model.FarmerChildModel{}).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"DELETE FROM experience_likes WHERE experience_id IN (SELECT id FROM farmer_experiences WHERE farmer_id = ?)",
		farmerID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM experience_comments WHERE experience_id IN (SELECT id FROM farmer_experiences WHERE farmer_id = ?))",
		farmerID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"DELETE FROM experience_comments WHERE experience_id IN (SELECT id FROM farmer_experiences WHERE farmer_id = ?)",
		farmerID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM farmer_experiences WHERE farmer_id = ?", farmerID).Error; err != nil {
		return err
	}
	return tx.Delete(&model.FarmerModel{}, farmerID).Error
}
