package dto

type ProjectCreateRequest struct {
	ProjectCode   *string  `json:"project_code" validate:"omitempty,max=50"`
	Title         string   `json:"title" validate:"required,min=3,max=255"`
	Description   *string  `json:"description"`
	OrganizationID *uint   `json:"organization_id"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	Status        *string  `json:"status" validate:"omitempty,max=50"`
	ResearchType  string   `json:"research_type" validate:"required,max=50"`
	Objectives    *string  `json:"objectives"`
	Methodology   *string  `json:"methodology"`
	Budget        *float64 `json:"budget"`
	FundingSource *string  `json:"funding_source"`
}

type ProjectUpdateRequest struct {
	ProjectCode   *string  `json:"project_code" validate:"omitempty,max=50"`
	Title         *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Description   *string  `json:"description"`
	OrganizationID *uint   `json:"organization_id"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	Status        *string  `json:"status" validate:"omitempty,max=50"`
	ResearchType  *string  `json:"research_type" validate:"omitempty,max=50"`
	Objectives    *string  `json:"objectives"`
	Methodology   *string  `json:"methodology"`
	Budget        *float64 `json:"budget"`
	FundingSource *string  `json:"funding_source"`
}
