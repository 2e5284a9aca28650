package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDPatient   = 1
	RoleIDDoctor    = 2
	RoleIDHospital  = 3
	RoleIDAuthority = 4
)

// RoleNames constants
const (
	RolePatient   = "patient"
	RoleDoctor    = "doctor"
	RoleHospital  = "hospital"
	RoleAuthority = "authority"
)

// RoleNameByID maps a role ID to its name. Returns an empty string for
// unknown IDs; the role set is closed and fixed at registration.
func RoleNameByID(id int) string {
	switch id {
	case RoleIDPatient:
		return RolePatient
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDHospital:
		return RoleHospital
	case RoleIDAuthority:
		return RoleAuthority
	}
	return ""
}

// RoleIDByName maps a role name to its ID. Returns 0 for unknown names.
func RoleIDByName(name string) int {
	switch name {
	case RolePatient:
		return RoleIDPatient
	case RoleDoctor:
		return RoleIDDoctor
	case RoleHospital:
		return RoleIDHospital
	case RoleAuthority:
		return RoleIDAuthority
	}
	return 0
}
