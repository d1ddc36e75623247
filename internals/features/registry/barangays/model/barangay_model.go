package model

import "time"

// BarangayModel is immutable reference data: territories are registered
// once and referenced by farmers for the system's lifetime.
type BarangayModel struct {
	ID                     uint     `gorm:"column:id;primaryKey" json:"id"`
	Name                   string   `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Latitude               *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude              *float64 `gorm:"column:longitude" json:"longitude"`
	Municipality           string   `gorm:"column:municipality;type:varchar(255);not null" json:"municipality"`
	Province               string   `gorm:"column:province;type:varchar(255);not null" json:"province"`
	Region                 string   `gorm:"column:region;type:varchar(255);not null" json:"region"`
	Population             *int     `gorm:"column:population" json:"population"`
	TotalHouseholds        *int     `gorm:"column:total_households" json:"total_households"`
	AgriculturalHouseholds *int     `gorm:"column:agricultural_households" json:"agricultural_households"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BarangayModel) TableName() string {
	return "barangays"
}
