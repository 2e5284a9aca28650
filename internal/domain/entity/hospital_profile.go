package entity

import (
	"github.com/google/uuid"
)

// HospitalProfile represents hospital-specific profile data. Bed counts
// are informational; the request workflow does not reserve beds.
type HospitalProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TotalBeds int       `gorm:"not null;default:0" json:"total_beds"`
	EmptyBeds int       `gorm:"not null;default:0" json:"empty_beds"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BedRequests []BedRequest `gorm:"foreignKey:HospitalID" json:"bed_requests,omitempty"`
}

func (HospitalProfile) TableName() string {
	return "hospital_profiles"
}
