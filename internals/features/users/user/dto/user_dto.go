package dto

// UserUpdateRequest is a partial patch: only non-nil fields are applied.
// password_hash and timestamps are never client-settable.
type UserUpdateRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	FullName       *string `json:"full_name"`
	Role           *string `json:"role"`
	OrganizationID *uint   `json:"organization_id"`
	IsActive       *bool   `json:"is_active"`
	OTPEnabled     *bool   `json:"otp_enabled"`
	Password       *string `json:"password" validate:"omitempty,min=6"`
}
