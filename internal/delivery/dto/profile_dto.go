package dto

// UpdateMeRequest carries a partial self-update. Role-specific fields
// supplied by a caller whose role does not own them reject the whole
// request.
type UpdateMeRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100,person_name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6,password_charset"`

	// Role-specific fields
	Phone     string `json:"phone" validate:"omitempty,intl_phone"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
	TotalBeds *int   `json:"total_beds" validate:"omitempty,gte=0"`
	EmptyBeds *int   `json:"empty_beds" validate:"omitempty,gte=0"`
}
