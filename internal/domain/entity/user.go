package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Avatar    string    `gorm:"type:text" json:"avatar,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role            Role             `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	PatientProfile  *PatientProfile  `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
	DoctorProfile   *DoctorProfile   `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	HospitalProfile *HospitalProfile `gorm:"foreignKey:UserID" json:"hospital_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsPatient reports whether the user holds the patient role.
func (u *User) IsPatient() bool {
	return u.RoleID == RoleIDPatient
}

// IsDoctor reports whether the user holds the doctor role.
func (u *User) IsDoctor() bool {
	return u.RoleID == RoleIDDoctor
}

// IsHospital reports whether the user holds the hospital role.
func (u *User) IsHospital() bool {
	return u.RoleID == RoleIDHospital
}

// IsAuthority reports whether the user holds the authority role.
func (u *User) IsAuthority() bool {
	return u.RoleID == RoleIDAuthority
}
