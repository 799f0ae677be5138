package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ReportSeverity string

const (
	ReportSeverityMild     ReportSeverity = "mild"
	ReportSeverityModerate ReportSeverity = "moderate"
	ReportSeveritySevere   ReportSeverity = "severe"
)

// ReportStatus moves pending -> reviewed -> consultation_requested, but any transition is accepted
type ReportStatus string

const (
	ReportStatusPending               ReportStatus = "pending"
	ReportStatusReviewed              ReportStatus = "reviewed"
	ReportStatusConsultationRequested ReportStatus = "consultation_requested"
)

// AIAnalysis is written by doctors; nothing in the system computes it.
type AIAnalysis struct {
	PossibleConditions pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	RecommendedActions pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	UrgencyLevel       *AlertSeverity `gorm:"type:varchar(20)"`
}

func (a AIAnalysis) IsZero() bool {
	return len(a.PossibleConditions) == 0 && len(a.RecommendedActions) == 0 && a.UrgencyLevel == nil
}

// SymptomReport is submitted by a patient and reviewed by doctors
type SymptomReport struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Symptoms        pq.StringArray `gorm:"type:text[];not null"`
	Description     string         `gorm:"type:text"`
	AudioTranscript *string        `gorm:"type:text"`
	Severity        ReportSeverity `gorm:"type:varchar(20);not null"`
	Duration        string         `gorm:"type:varchar(100);not null"`
	Status          ReportStatus   `gorm:"type:varchar(30);not null;default:'pending'"`
	ReviewedBy      *uuid.UUID     `gorm:"type:uuid"`
	ReviewNotes     *string        `gorm:"type:text"`
	AIAnalysis      AIAnalysis     `gorm:"embedded;embeddedPrefix:ai_"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`

	// Relationships
	Patient  *User `gorm:"foreignKey:PatientID"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy"`
}

func (SymptomReport) TableName() string {
	return "symptom_reports"
}

func (r *SymptomReport) IsOwnedBy(userID uuid.UUID) bool {
	return r.PatientID == userID
}

// MarkReviewed records the reviewing doctor; status is left to the caller.
func (r *SymptomReport) MarkReviewed(doctorID uuid.UUID) {
	r.ReviewedBy = &doctorID
}
