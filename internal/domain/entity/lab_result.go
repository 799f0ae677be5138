package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type LabResultStatus string

const (
	LabResultStatusNormal   LabResultStatus = "normal"
	LabResultStatusAbnormal LabResultStatus = "abnormal"
	LabResultStatusCritical LabResultStatus = "critical"
)

// LabFacility is stored as JSONB
type LabFacility struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
}

func (l LabFacility) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *LabFacility) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// LabResult belongs to a patient and is entered by the ordering doctor
type LabResult struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderedBy   *uuid.UUID      `gorm:"type:uuid"`
	TestName    string          `gorm:"type:varchar(255);not null"`
	TestDate    time.Time       `gorm:"not null"`
	Results     string          `gorm:"type:text;not null"`
	DoctorNotes *string         `gorm:"type:text"`
	FileURL     *string         `gorm:"column:file_url;type:text"`
	NormalRange *string         `gorm:"type:varchar(255)"`
	Status      LabResultStatus `gorm:"type:varchar(20);not null"`
	LabFacility *LabFacility    `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID"`
	Orderer *User `gorm:"foreignKey:OrderedBy"`
}

func (LabResult) TableName() string {
	return "lab_results"
}

func (l *LabResult) IsOwnedBy(userID uuid.UUID) bool {
	return l.PatientID == userID
}
