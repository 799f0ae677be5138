package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for patient profiles
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User represents both patients and doctors; Role is fixed at registration
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:text;not null" json:"-"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"lastName"`
	Phone          *string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Role           string     `gorm:"type:varchar(20);not null;index" json:"role"`
	Specialization *string    `gorm:"type:varchar(150)" json:"specialization,omitempty"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender         *string    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
