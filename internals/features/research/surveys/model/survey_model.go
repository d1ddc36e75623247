package model

import "time"

type SurveyQuestionnaireModel struct {
	ID          uint    `gorm:"column:id;primaryKey" json:"id"`
	ProjectID   *uint   `gorm:"column:project_id" json:"project_id"`
	Title       string  `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description"`
	Category    string  `gorm:"column:category;type:varchar(50);not null;default:General" json:"category"`
	TargetGroup *string `gorm:"column:target_group;type:varchar(255)" json:"target_group"`

	// SET NULL on user deletion.
	CreatedBy *uint `gorm:"column:created_by" json:"created_by"`

	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SurveyQuestionnaireModel) TableName() string {
	return "survey_questionnaires"
}
