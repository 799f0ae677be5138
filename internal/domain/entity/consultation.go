package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ConsultationStatus string

const (
	ConsultationStatusScheduled  ConsultationStatus = "scheduled"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusCompleted  ConsultationStatus = "completed"
	ConsultationStatusCancelled  ConsultationStatus = "cancelled"
)

// ConsultationType is the session modality; transport is handled by the meeting URL provider
type ConsultationType string

const (
	ConsultationTypeVideo ConsultationType = "video"
	ConsultationTypeAudio ConsultationType = "audio"
	ConsultationTypeChat  ConsultationType = "chat"
)

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription is stored as JSONB
type Prescription struct {
	Medications []Medication `json:"medications"`
	Notes       string       `json:"notes,omitempty"`
}

func (p Prescription) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Prescription) Scan(value interface{}) error {
	return scanJSONB(value, p)
}

// FollowUp is stored as JSONB
type FollowUp struct {
	Required      bool       `json:"required"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
}

func (f FollowUp) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FollowUp) Scan(value interface{}) error {
	return scanJSONB(value, f)
}

// Consultation links one patient and one doctor, optionally to the report that prompted it
type Consultation struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	DoctorID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	ReportID     *uuid.UUID         `gorm:"type:uuid"`
	ScheduledAt  time.Time          `gorm:"not null"`
	Status       ConsultationStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	Type         ConsultationType   `gorm:"type:varchar(10);not null"`
	Notes        *string            `gorm:"type:text"`
	Prescription *Prescription      `gorm:"type:jsonb"`
	FollowUp     *FollowUp          `gorm:"type:jsonb"`
	Duration     *int               // minutes
	MeetingURL   *string            `gorm:"column:meeting_url;type:text"`
	CreatedAt    time.Time          `gorm:"autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime"`

	// Relationships
	Patient *User          `gorm:"foreignKey:PatientID"`
	Doctor  *User          `gorm:"foreignKey:DoctorID"`
	Report  *SymptomReport `gorm:"foreignKey:ReportID"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsParticipant reports whether the caller is this consultation's patient or doctor,
// matching on both id and role.
func (c *Consultation) IsParticipant(caller Identity) bool {
	switch caller.Role {
	case RolePatient:
		return c.PatientID == caller.UserID
	case RoleDoctor:
		return c.DoctorID == caller.UserID
	default:
		return false
	}
}

func (c *Consultation) Cancel() {
	c.Status = ConsultationStatusCancelled
}
