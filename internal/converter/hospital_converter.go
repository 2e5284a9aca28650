package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// HospitalToResponse projects a hospital-role user to the reduced
// public listing shape.
func HospitalToResponse(user *entity.User) *dto.HospitalResponse {
	if user == nil {
		return nil
	}

	response := &dto.HospitalResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Name:     user.Name,
	}

	if user.HospitalProfile != nil {
		response.TotalBeds = user.HospitalProfile.TotalBeds
		response.EmptyBeds = user.HospitalProfile.EmptyBeds
	}

	return response
}

func HospitalsToResponses(users []entity.User) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *HospitalToResponse(&users[i]))
	}
	return responses
}
