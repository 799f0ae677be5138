package dto

import (
	"time"

	"github.com/google/uuid"
)

// PageMeta is flattened into every list response.
type PageMeta struct {
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Total       int64 `json:"total"`
}

// UserSummary is the expanded form of a user reference.
type UserSummary struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email,omitempty"`
	Role           string  `json:"role,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	Gender         *string `json:"gender,omitempty"`
}

// UserRef always carries the id; Profile is present only when the user was resolved.
type UserRef struct {
	ID      uuid.UUID    `json:"id"`
	Profile *UserSummary `json:"profile,omitempty"`
}

// ReportSummary is the expanded form of a report reference.
type ReportSummary struct {
	Symptoms  []string  `json:"symptoms"`
	Severity  string    `json:"severity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportRef always carries the id; Report is present only when the report was resolved.
type ReportRef struct {
	ID     uuid.UUID      `json:"id"`
	Report *ReportSummary `json:"report,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
