package model

import "time"

type OrganizationModel struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Type          string    `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	Address       string    `gorm:"column:address;type:text" json:"location"`
	ContactPerson string    `gorm:"column:contact_person;type:varchar(255)" json:"contact_person"`
	ContactEmail  string    `gorm:"column:contact_email;type:varchar(255)" json:"contact_email"`
	ContactPhone  string    `gorm:"column:contact_phone;type:varchar(50)" json:"contact_phone"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrganizationModel) TableName() string {
	return "organizations"
}
