package entity

import (
	"time"

	"github.com/google/uuid"
)

// BedRequestStatus represents the status of a bed request
type BedRequestStatus string

const (
	BedRequestStatusPending   BedRequestStatus = "pending"
	BedRequestStatusCancelled BedRequestStatus = "cancelled"
	BedRequestStatusAccepted  BedRequestStatus = "accepted"
	BedRequestStatusRejected  BedRequestStatus = "rejected"
)

// BedRequest represents a patient's bed request against a hospital.
// A patient has at most one pending request at a time; a hospital's
// pending set is the set of pending rows targeting it.
type BedRequest struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	HospitalID uuid.UUID        `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Status     BedRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Hospital User `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (BedRequest) TableName() string {
	return "bed_requests"
}

// IsPending checks if the request is still awaiting a hospital decision
func (r *BedRequest) IsPending() bool {
	return r.Status == BedRequestStatusPending
}

// IsCancelled checks if the request was withdrawn by the patient
func (r *BedRequest) IsCancelled() bool {
	return r.Status == BedRequestStatusCancelled
}

// IsAccepted checks if the hospital accepted the request
func (r *BedRequest) IsAccepted() bool {
	return r.Status == BedRequestStatusAccepted
}

// IsRejected checks if the hospital rejected the request
func (r *BedRequest) IsRejected() bool {
	return r.Status == BedRequestStatusRejected
}
