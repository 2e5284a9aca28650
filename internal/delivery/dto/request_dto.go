package dto

import "time"

type CreateBedRequestRequest struct {
	// To is the username of the target hospital account.
	To string `json:"to" validate:"required,min=4,username"`
}

type BedRequestResponse struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	PatientID        string    `json:"patient_id"`
	HospitalID       string    `json:"hospital_id"`
	PatientUsername  string    `json:"patient_username,omitempty"`
	PatientName      string    `json:"patient_name,omitempty"`
	HospitalUsername string    `json:"hospital_username,omitempty"`
	HospitalName     string    `json:"hospital_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type BedRequestListResponse struct {
	Requests []BedRequestResponse `json:"requests"`
	Total    int                  `json:"total"`
}

// HospitalResponse is the reduced public projection any authenticated
// caller may list to pick a request target.
type HospitalResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	TotalBeds int    `json:"total_beds"`
	EmptyBeds int    `json:"empty_beds"`
}
