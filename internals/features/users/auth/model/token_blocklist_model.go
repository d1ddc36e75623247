package model

import "time"

// TokenBlocklist stores the jti of every revoked token so logout can
// invalidate a token before its natural expiry. Append-only.
type TokenBlocklist struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;type:varchar(36);not null;index" json:"jti"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TokenBlocklist) TableName() string {
	return "token_blocklist"
}
