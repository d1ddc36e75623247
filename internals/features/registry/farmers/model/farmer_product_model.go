package model

import (
	productModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
)

// FarmerProductModel joins Farmer × AgriculturalProduct. The whole set for
// a farmer is replaced atomically (delete-then-reinsert) on product edits.
type FarmerProductModel struct {
	ID       uint         `gorm:"column:id;primaryKey" json:"id"`
	FarmerID uint         `gorm:"column:farmer_id;not null;index" json:"farmer_id"`
	Farmer   *FarmerModel `gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE" json:"-"`

	ProductID uint                                   `gorm:"column:product_id;not null" json:"product_id"`
	Product   *productModel.AgriculturalProductModel `gorm:"foreignKey:ProductID" json:"-"`

	ProductionVolume *float64 `gorm:"column:production_volume;type:numeric(10,2)" json:"production_volume"`
	Unit             string   `gorm:"column:unit;type:varchar(50)" json:"unit"`
	IsPrimary        bool     `gorm:"column:is_primary;default:false" json:"is_primary"`
	SellingPrice     *float64 `gorm:"column:selling_price;type:numeric(10,2)" json:"selling_price"`
}

func (FarmerProductModel) TableName() string {
	return "farmer_products"
}
