package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// BedRequestToResponse includes patient/hospital identity only when the
// relationship was preloaded.
func BedRequestToResponse(request *entity.BedRequest) *dto.BedRequestResponse {
	if request == nil {
		return nil
	}

	response := &dto.BedRequestResponse{
		ID:         request.ID.String(),
		Status:     string(request.Status),
		PatientID:  request.PatientID.String(),
		HospitalID: request.HospitalID.String(),
		CreatedAt:  request.CreatedAt,
		UpdatedAt:  request.UpdatedAt,
	}

	if request.Patient.Username != "" {
		response.PatientUsername = request.Patient.Username
		response.PatientName = request.Patient.Name
	}
	if request.Hospital.Username != "" {
		response.HospitalUsername = request.Hospital.Username
		response.HospitalName = request.Hospital.Name
	}

	return response
}

func BedRequestsToResponses(requests []entity.BedRequest) []dto.BedRequestResponse {
	responses := make([]dto.BedRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *BedRequestToResponse(&requests[i]))
	}
	return responses
}
