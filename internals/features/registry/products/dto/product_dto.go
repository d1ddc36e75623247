package dto

type ProductCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Description string `json:"description"`
}

type ProductUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}
