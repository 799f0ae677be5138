package dto

import "github.com/google/uuid"

type DoctorListQuery struct {
	Specialization string `json:"specialization" validate:"omitempty,max=150"`
	Search         string `json:"search" validate:"omitempty,max=100"`
	Page           int    `json:"page"`
	Limit          int    `json:"limit"`
}

// DoctorResponse is the public directory entry; contact details stay private.
type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Specialization *string   `json:"specialization,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	PageMeta
}
