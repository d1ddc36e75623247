package dto

type OrganizationCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Type          string `json:"type" validate:"required,max=50"`
	Description   string `json:"description"`
	Address       string `json:"location"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
}

type OrganizationUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=255"`
	Type          *string `json:"type" validate:"omitempty,max=50"`
	Description   *string `json:"description"`
	Address       *string `json:"location"`
	ContactPerson *string `json:"contact_person"`
	ContactEmail  *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone"`
}
