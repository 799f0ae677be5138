package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LabFacilityRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

type CreateLabResultRequest struct {
	PatientID   uuid.UUID           `json:"patientId" validate:"required"`
	TestName    string              `json:"testName" validate:"required,max=255"`
	TestDate    time.Time           `json:"testDate" validate:"required"`
	Results     string              `json:"results" validate:"required"`
	DoctorNotes *string             `json:"doctorNotes"`
	FileURL     *string             `json:"fileUrl" validate:"omitempty,url"`
	NormalRange *string             `json:"normalRange" validate:"omitempty,max=255"`
	Status      string              `json:"status" validate:"required,oneof=normal abnormal critical"`
	LabFacility *LabFacilityRequest `json:"labFacility"`
}

// UpdateLabResultRequest is decoded strictly: only these keys may appear in a PATCH body.
type UpdateLabResultRequest struct {
	Results     *string `json:"results" validate:"omitempty,min=1"`
	DoctorNotes *string `json:"doctorNotes"`
	Status      *string `json:"status" validate:"omitempty,oneof=normal abnormal critical"`
	NormalRange *string `json:"normalRange" validate:"omitempty,max=255"`
}

type LabResultListQuery struct {
	PatientID string `json:"patientId" validate:"omitempty,uuid"`
	Status    string `json:"status" validate:"omitempty,oneof=normal abnormal critical"`
	TestName  string `json:"testName" validate:"omitempty,max=255"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

// Response DTOs

type LabFacilityResponse struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type LabResultResponse struct {
	ID          uuid.UUID            `json:"id"`
	Patient     UserRef              `json:"patient"`
	OrderedBy   *UserRef             `json:"orderedBy,omitempty"`
	TestName    string               `json:"testName"`
	TestDate    time.Time            `json:"testDate"`
	Results     string               `json:"results"`
	DoctorNotes *string              `json:"doctorNotes,omitempty"`
	FileURL     *string              `json:"fileUrl,omitempty"`
	NormalRange *string              `json:"normalRange,omitempty"`
	Status      string               `json:"status"`
	LabFacility *LabFacilityResponse `json:"labFacility,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type LabResultListResponse struct {
	LabResults []LabResultResponse `json:"labResults"`
	PageMeta
}
