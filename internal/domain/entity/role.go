package entity

import "github.com/google/uuid"

// Role names carried in JWT claims and stored on users.role
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// IsValidRole reports whether role is one of the registrable roles
func IsValidRole(role string) bool {
	return role == RoleDoctor || role == RolePatient
}

// Identity is the authenticated caller as resolved by the access layer.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) IsDoctor() bool {
	return i.Role == RoleDoctor
}

func (i Identity) IsPatient() bool {
	return i.Role == RolePatient
}
