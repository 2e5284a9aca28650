package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// UserToResponse converts a User entity to its sanitized response shape.
// The password hash never leaves the entity; role-specific fields are
// flattened from the loaded profile.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Name:     user.Name,
		Role:     entity.RoleNameByID(user.RoleID),
		Avatar:   user.Avatar,
	}

	if user.Email != nil {
		response.Email = *user.Email
	}

	if user.PatientProfile != nil {
		response.Phone = user.PatientProfile.Phone
	}

	if user.DoctorProfile != nil {
		response.Specialty = user.DoctorProfile.Specialty
	}

	if user.HospitalProfile != nil {
		totalBeds := user.HospitalProfile.TotalBeds
		emptyBeds := user.HospitalProfile.EmptyBeds
		response.TotalBeds = &totalBeds
		response.EmptyBeds = &emptyBeds
	}

	return response
}

// UsersToResponses converts a slice of users
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *UserToResponse(&users[i]))
	}
	return responses
}
