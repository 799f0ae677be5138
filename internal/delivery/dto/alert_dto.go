package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PointRequest struct {
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
}

type GeographicAreaRequest struct {
	Country     *string       `json:"country" validate:"omitempty,max=100"`
	Region      *string       `json:"region" validate:"omitempty,max=100"`
	City        *string       `json:"city" validate:"omitempty,max=100"`
	Coordinates *PointRequest `json:"coordinates" validate:"omitempty"`
	Radius      *float64      `json:"radius" validate:"omitempty,gte=0"` // kilometers
}

type AlertMetadataRequest struct {
	SymptomPattern []string    `json:"symptomPattern" validate:"omitempty,dive,required"`
	AffectedCount  *int        `json:"affectedCount" validate:"omitempty,gte=0"`
	RelatedReports []uuid.UUID `json:"relatedReports"`
}

type CreateAlertRequest struct {
	Type           string                 `json:"type" validate:"required,oneof=outbreak appointment lab_result system"`
	Title          string                 `json:"title" validate:"required,max=255"`
	Message        string                 `json:"message" validate:"required"`
	Severity       string                 `json:"severity" validate:"required,oneof=low medium high critical"`
	TargetUsers    []uuid.UUID            `json:"targetUsers"`
	TargetRoles    []string               `json:"targetRoles" validate:"omitempty,dive,oneof=patient doctor"`
	GeographicArea *GeographicAreaRequest `json:"geographicArea" validate:"omitempty"`
	Metadata       *AlertMetadataRequest  `json:"metadata" validate:"omitempty"`
	ExpiresAt      *time.Time             `json:"expiresAt"`
}

// UpdateAlertRequest is decoded strictly: only these keys may appear in a PATCH body.
type UpdateAlertRequest struct {
	Title     *string               `json:"title" validate:"omitempty,min=1,max=255"`
	Message   *string               `json:"message" validate:"omitempty,min=1"`
	Severity  *string               `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	IsActive  *bool                 `json:"isActive"`
	ExpiresAt *time.Time            `json:"expiresAt"`
	Metadata  *AlertMetadataRequest `json:"metadata" validate:"omitempty"`
}

type AlertListQuery struct {
	Type     string `json:"type" validate:"omitempty,oneof=outbreak appointment lab_result system"`
	Severity string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	IsActive bool   `json:"isActive"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// Response DTOs

type PointResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type GeographicAreaResponse struct {
	Country     *string        `json:"country,omitempty"`
	Region      *string        `json:"region,omitempty"`
	City        *string        `json:"city,omitempty"`
	Coordinates *PointResponse `json:"coordinates,omitempty"`
	Radius      *float64       `json:"radius,omitempty"`
}

type AlertMetadataResponse struct {
	SymptomPattern []string    `json:"symptomPattern"`
	AffectedCount  *int        `json:"affectedCount,omitempty"`
	RelatedReports []ReportRef `json:"relatedReports"`
}

type AlertResponse struct {
	ID             uuid.UUID               `json:"id"`
	Type           string                  `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Severity       string                  `json:"severity"`
	TargetUsers    []UserRef               `json:"targetUsers"`
	TargetRoles    []string                `json:"targetRoles"`
	GeographicArea *GeographicAreaResponse `json:"geographicArea,omitempty"`
	Metadata       AlertMetadataResponse   `json:"metadata"`
	ExpiresAt      *time.Time              `json:"expiresAt,omitempty"`
	IsActive       bool                    `json:"isActive"`
	IsRead         bool                    `json:"isRead"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	PageMeta
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
