package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserModel struct {
	ID             uint    `gorm:"column:id;primaryKey" json:"id"`
	Username       string  `gorm:"column:username;type:varchar(100);not null;uniqueIndex" json:"username"`
	Email          string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash   string  `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FullName       string  `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Role           string  `gorm:"column:role;type:varchar(50);not null" json:"role"`
	OrganizationID *uint   `gorm:"column:organization_id" json:"organization_id"`
	IsActive       bool    `gorm:"column:is_active;default:true" json:"is_active"`

	// OTP login (second factor, delivered by mail)
	OTPCode    *string    `gorm:"column:otp_code;type:varchar(6)" json:"-"`
	OTPExpiry  *time.Time `gorm:"column:otp_expiry" json:"-"`
	OTPEnabled bool       `gorm:"column:otp_enabled;default:false" json:"otp_enabled"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
