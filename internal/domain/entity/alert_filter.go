package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pagination is a 1-indexed page with a positive limit.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// AlertFilter is a domain-level filter for listing alerts visible to a viewer.
type AlertFilter struct {
	Pagination
	Viewer   Identity
	Type     *AlertType
	Severity *AlertSeverity
	IsActive bool
}

type ReportFilter struct {
	Pagination
	Status   *ReportStatus
	Severity *ReportSeverity
}

type ConsultationFilter struct {
	Pagination
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *ConsultationStatus
	Type      *ConsultationType
	// Day restricts scheduledAt to [Day, Day+24h).
	Day *time.Time
}

type LabResultFilter struct {
	Pagination
	PatientID *uuid.UUID
	Status    *LabResultStatus
	TestName  string // case-insensitive substring
}

type AuditLogFilter struct {
	Pagination
	UserID *uuid.UUID
	// Action matches exactly, or by prefix when it ends in ".", e.g. "alert."
	Action string
}

type DoctorFilter struct {
	Pagination
	// Specialization and Search match case-insensitively by substring.
	Specialization string
	Search         string
}
