package dto

type ExperienceCreateRequest struct {
	FarmerID       uint    `json:"farmer_id" validate:"required"`
	ExperienceType string  `json:"experience_type" validate:"required,max=50"`
	Title          string  `json:"title" validate:"required,min=3,max=255"`
	Description    string  `json:"description" validate:"required"`
	DateRecorded   *string `json:"date_recorded"`
	Location       *string `json:"location"`
	Context        *string `json:"context"`
	ImpactLevel    *string `json:"impact_level"`
}

type ExperienceUpdateRequest struct {
	ExperienceType  *string `json:"experience_type" validate:"omitempty,max=50"`
	Title           *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description     *string `json:"description"`
	DateRecorded    *string `json:"date_recorded"`
	Location        *string `json:"location"`
	Context         *string `json:"context"`
	ImpactLevel     *string `json:"impact_level"`
	CommentsEnabled *bool   `json:"comments_enabled"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}
