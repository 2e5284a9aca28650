package dto

// Request DTOs

// RegisterRequest covers all self-registerable roles. The role-specific
// field for the chosen role is mandatory; fields belonging to other
// roles are ignored here (updates reject them, registration does not).
type RegisterRequest struct {
	Role     string `json:"role" validate:"required,oneof=patient doctor hospital"`
	Name     string `json:"name" validate:"required,max=100,person_name"`
	Username string `json:"username" validate:"required,min=4,max=50,username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6,password_charset"`

	// Role-specific fields
	Phone     string `json:"phone" validate:"required_if=Role patient,omitempty,intl_phone"`
	Specialty string `json:"specialty" validate:"required_if=Role doctor,omitempty,max=100"`
	TotalBeds int    `json:"total_beds" validate:"gte=0"`
	EmptyBeds int    `json:"empty_beds" validate:"gte=0"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=4,username"`
	Password string `json:"password" validate:"required,min=6,password_charset"`
}

// Response DTOs

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	TotalBeds *int   `json:"total_beds,omitempty"`
	EmptyBeds *int   `json:"empty_beds,omitempty"`
}

// WhoamiResponse never errors; LoggedIn is false for missing, expired,
// or unresolvable sessions.
type WhoamiResponse struct {
	LoggedIn bool          `json:"loggedIn"`
	User     *UserResponse `json:"user"`
}

type UsernameAvailabilityResponse struct {
	Available bool `json:"available"`
}
