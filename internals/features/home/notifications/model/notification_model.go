package model

import "time"

// NotificationModel rows are pre-fanned-out: a broadcast writes one row per
// active recipient, so visibility is always "user_id = caller". is_read is
// the only mutable field; clear deletes rows wholesale.
type NotificationModel struct {
	ID      uint   `gorm:"column:id;primaryKey" json:"id"`
	UserID  *uint  `gorm:"column:user_id;index" json:"user_id"`
	Title   string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Message string `gorm:"column:message;type:text;not null" json:"message"`
	IsRead  bool   `gorm:"column:is_read;default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
