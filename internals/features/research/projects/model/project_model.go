package model

import (
	"time"

	orgModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

type ResearchProjectModel struct {
	ID          uint    `gorm:"column:id;primaryKey" json:"id"`
	ProjectCode *string `gorm:"column:project_code;type:varchar(50);uniqueIndex" json:"project_code"`
	Title       string  `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description"`

	// SET NULL on user deletion rather than blocking it.
	PrincipalInvestigatorID *uint                `gorm:"column:principal_investigator_id" json:"principal_investigator_id"`
	PrincipalInvestigator   *userModel.UserModel `gorm:"foreignKey:PrincipalInvestigatorID" json:"-"`

	OrganizationID *uint                       `gorm:"column:organization_id" json:"organization_id"`
	Organization   *orgModel.OrganizationModel `gorm:"foreignKey:OrganizationID" json:"-"`

	StartDate     *time.Time `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate       *time.Time `gorm:"column:end_date;type:date" json:"end_date"`
	Status        string     `gorm:"column:status;type:varchar(50);default:Planning" json:"status"`
	ResearchType  string     `gorm:"column:research_type;type:varchar(50);not null" json:"research_type"`
	Objectives    *string    `gorm:"column:objectives;type:text" json:"objectives"`
	Methodology   *string    `gorm:"column:methodology;type:text" json:"methodology"`
	Budget        *float64   `gorm:"column:budget;type:numeric(15,2)" json:"budget"`
	FundingSource *string    `gorm:"column:funding_source;type:varchar(255)" json:"funding_source"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ResearchProjectModel) TableName() string {
	return "research_projects"
}
