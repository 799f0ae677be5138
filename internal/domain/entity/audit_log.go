package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserRegister       = "user.register"
	AuditActionProfileUpdate      = "profile.update"
	AuditActionAlertCreate        = "alert.create"
	AuditActionAlertUpdate        = "alert.update"
	AuditActionAlertDelete        = "alert.delete"
	AuditActionAlertExpire        = "alert.expire"
	AuditActionReportCreate       = "report.create"
	AuditActionReportReview       = "report.review"
	AuditActionReportDelete       = "report.delete"
	AuditActionConsultationCreate = "consultation.create"
	AuditActionConsultationUpdate = "consultation.update"
	AuditActionConsultationDelete = "consultation.delete"
	AuditActionLabResultCreate    = "lab_result.create"
	AuditActionLabResultUpdate    = "lab_result.update"
	AuditActionLabResultDelete    = "lab_result.delete"
)
