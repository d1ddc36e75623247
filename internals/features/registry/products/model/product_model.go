package model

import "time"

// AgriculturalProductModel rows are created explicitly by researchers or
// implicitly (get-or-create by lower-cased name) during farmer ingestion.
// Uniqueness on LOWER(name) is enforced by an index added in Migrate.
type AgriculturalProductModel struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;unique" json:"name"`
	Category    string    `gorm:"column:category;type:varchar(50);not null" json:"category"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AgriculturalProductModel) TableName() string {
	return "agricultural_products"
}
