package model

import (
	"time"

	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

// ActivityLogModel is the append-only audit trail. Rows are only ever
// inserted; user_id is NULLed when the acting account is deleted so the
// history survives.
type ActivityLogModel struct {
	ID     uint                 `gorm:"column:id;primaryKey" json:"id"`
	UserID *uint                `gorm:"column:user_id" json:"user_id"`
	User   *userModel.UserModel `gorm:"foreignKey:UserID" json:"-"`

	Action     string  `gorm:"column:action;type:varchar(255);not null" json:"action"`
	EntityType *string `gorm:"column:entity_type;type:varchar(100)" json:"entity_type"`
	EntityID   *string `gorm:"column:entity_id;type:varchar(100)" json:"entity_id"`
	Details    *string `gorm:"column:details;type:text" json:"details"`
	IPAddress  *string `gorm:"column:ip_address;type:varchar(50)" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
