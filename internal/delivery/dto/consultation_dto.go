package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateConsultationRequest struct {
	// PatientID may be omitted by patients, who can only book for themselves.
	PatientID   *uuid.UUID `json:"patientId"`
	DoctorID    uuid.UUID  `json:"doctorId" validate:"required"`
	ReportID    *uuid.UUID `json:"reportId"`
	ScheduledAt time.Time  `json:"scheduledAt" validate:"required"`
	Type        string     `json:"type" validate:"required,oneof=video audio chat"`
}

type MedicationRequest struct {
	Name         string `json:"name" validate:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type PrescriptionRequest struct {
	Medications []MedicationRequest `json:"medications" validate:"dive"`
	Notes       string              `json:"notes"`
}

type FollowUpRequest struct {
	Required      bool       `json:"required"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Instructions  string     `json:"instructions"`
}

// UpdateConsultationRequest is decoded strictly: only these keys may appear in a PATCH body.
type UpdateConsultationRequest struct {
	Status       *string              `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Notes        *string              `json:"notes"`
	Prescription *PrescriptionRequest `json:"prescription" validate:"omitempty"`
	FollowUp     *FollowUpRequest     `json:"followUp" validate:"omitempty"`
	Duration     *int                 `json:"duration" validate:"omitempty,gte=0"`
	MeetingURL   *string              `json:"meetingUrl" validate:"omitempty,url"`
}

// IsPatientCancellation reports whether the request is exactly {status: "cancelled"},
// the only change a patient may make.
func (r *UpdateConsultationRequest) IsPatientCancellation() bool {
	return r.Status != nil && *r.Status == "cancelled" &&
		r.Notes == nil && r.Prescription == nil && r.FollowUp == nil &&
		r.Duration == nil && r.MeetingURL == nil
}

type ConsultationListQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Type   string `json:"type" validate:"omitempty,oneof=video audio chat"`
	Date   string `json:"date" validate:"omitempty,date"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

// Response DTOs

type MedicationResponse struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type PrescriptionResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Notes       string               `json:"notes,omitempty"`
}

type FollowUpResponse struct {
	Required      bool       `json:"required"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
}

type ConsultationResponse struct {
	ID           uuid.UUID             `json:"id"`
	Patient      UserRef               `json:"patient"`
	Doctor       UserRef               `json:"doctor"`
	Report       *ReportRef            `json:"report,omitempty"`
	ScheduledAt  time.Time             `json:"scheduledAt"`
	Status       string                `json:"status"`
	Type         string                `json:"type"`
	Notes        *string               `json:"notes,omitempty"`
	Prescription *PrescriptionResponse `json:"prescription,omitempty"`
	FollowUp     *FollowUpResponse     `json:"followUp,omitempty"`
	Duration     *int                  `json:"duration,omitempty"`
	MeetingURL   *string               `json:"meetingUrl,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	PageMeta
}
