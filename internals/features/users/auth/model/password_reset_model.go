package model

import "time"

// PasswordReset is the persisted recovery-code store. One row per request,
// keyed by email, checked and deleted transactionally on verification.
type PasswordReset struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;index" json:"email"`
	Code      string    `gorm:"column:code;type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
