package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogListQuery struct {
	UserID string `json:"userId" validate:"omitempty,uuid"`
	Action string `json:"action" validate:"omitempty,max=100"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"userId,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs []AuditLogResponse `json:"logs"`
	PageMeta
}
