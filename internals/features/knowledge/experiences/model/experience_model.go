package model

import (
	"time"

	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

// FarmerExperienceModel is an oral-history / local-knowledge entry tied to
// a farmer and the interviewing user. Deleting the experience cascades to
// its comments and like rows.
type FarmerExperienceModel struct {
	ID       uint                     `gorm:"column:id;primaryKey" json:"id"`
	FarmerID uint                     `gorm:"column:farmer_id;not null;index" json:"farmer_id"`
	Farmer   *farmerModel.FarmerModel `gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE" json:"-"`

	ExperienceType string     `gorm:"column:experience_type;type:varchar(50);not null" json:"experience_type"`
	Title          string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"column:description;type:text;not null" json:"description"`
	DateRecorded   *time.Time `gorm:"column:date_recorded;type:date" json:"date_recorded"`

	// NULLed out when the interviewer account is deleted.
	InterviewerID *uint                `gorm:"column:interviewer_id" json:"interviewer_id"`
	Interviewer   *userModel.UserModel `gorm:"foreignKey:InterviewerID" json:"-"`

	Location        *string `gorm:"column:location;type:varchar(255)" json:"location"`
	Context         *string `gorm:"column:context;type:text" json:"context"`
	ImpactLevel     *string `gorm:"column:impact_level;type:varchar(20)" json:"impact_level"`
	CommentsEnabled bool    `gorm:"column:comments_enabled;default:true" json:"comments_enabled"`

	LikedBy  []userModel.UserModel    `gorm:"many2many:experience_likes;joinForeignKey:experience_id;joinReferences:user_id" json:"-"`
	Comments []ExperienceCommentModel `gorm:"foreignKey:ExperienceID" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FarmerExperienceModel) TableName() string {
	return "farmer_experiences"
}

type ExperienceCommentModel struct {
	ID           uint                 `gorm:"column:id;primaryKey" json:"id"`
	ExperienceID uint                 `gorm:"column:experience_id;not null;index" json:"experience_id"`
	UserID       uint                 `gorm:"column:user_id;not null" json:"user_id"`
	User         *userModel.UserModel `gorm:"foreignKey:UserID" json:"-"`
	Text         string               `gorm:"column:text;type:text;not null" json:"text"`

	LikedBy []userModel.UserModel `gorm:"many2many:comment_likes;joinForeignKey:comment_id;joinReferences:user_id" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ExperienceCommentModel) TableName() string {
	return "experience_comments"
}
