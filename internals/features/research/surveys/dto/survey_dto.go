package dto

type SurveyCreateRequest struct {
	ProjectID   *uint   `json:"project_id"`
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	TargetGroup *string `json:"target_group" validate:"omitempty,max=255"`
}

type SurveyUpdateRequest struct {
	ProjectID   *uint   `json:"project_id"`
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	TargetGroup *string `json:"target_group" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}
