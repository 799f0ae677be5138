package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateReportRequest struct {
	Symptoms        []string `json:"symptoms" validate:"required,min=1,dive,required"`
	Description     string   `json:"description"`
	AudioTranscript *string  `json:"audioTranscript"`
	Severity        string   `json:"severity" validate:"required,oneof=mild moderate severe"`
	Duration        string   `json:"duration" validate:"required,max=100"`
}

type AIAnalysisRequest struct {
	PossibleConditions []string `json:"possibleConditions" validate:"omitempty,dive,required"`
	RecommendedActions []string `json:"recommendedActions" validate:"omitempty,dive,required"`
	UrgencyLevel       *string  `json:"urgencyLevel" validate:"omitempty,oneof=low medium high critical"`
}

// ReviewReportRequest is decoded strictly; the reviewing doctor is recorded on every call.
type ReviewReportRequest struct {
	Status      *string            `json:"status" validate:"omitempty,oneof=pending reviewed consultation_requested"`
	ReviewNotes *string            `json:"reviewNotes"`
	AIAnalysis  *AIAnalysisRequest `json:"aiAnalysis" validate:"omitempty"`
}

type ReportListQuery struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending reviewed consultation_requested"`
	Severity string `json:"severity" validate:"omitempty,oneof=mild moderate severe"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// Response DTOs

type AIAnalysisResponse struct {
	PossibleConditions []string `json:"possibleConditions"`
	RecommendedActions []string `json:"recommendedActions"`
	UrgencyLevel       *string  `json:"urgencyLevel,omitempty"`
}

type ReportResponse struct {
	ID              uuid.UUID           `json:"id"`
	Patient         UserRef             `json:"patient"`
	Symptoms        []string            `json:"symptoms"`
	Description     string              `json:"description"`
	AudioTranscript *string             `json:"audioTranscript,omitempty"`
	Severity        string              `json:"severity"`
	Duration        string              `json:"duration"`
	Status          string              `json:"status"`
	ReviewedBy      *UserRef            `json:"reviewedBy,omitempty"`
	ReviewNotes     *string             `json:"reviewNotes,omitempty"`
	AIAnalysis      *AIAnalysisResponse `json:"aiAnalysis,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	PageMeta
}
