package entity

import (
	"github.com/google/uuid"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialty string    `gorm:"type:varchar(100);not null" json:"specialty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
