package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ReportToResponse converts a SymptomReport entity to ReportResponse DTO
func ReportToResponse(report *entity.SymptomReport) *dto.ReportResponse {
	if report == nil {
		return nil
	}

	response := &dto.ReportResponse{
		ID:              report.ID,
		Patient:         UserToRef(report.PatientID, report.Patient),
		Symptoms:        stringsOrEmpty(report.Symptoms),
		Description:     report.Description,
		AudioTranscript: report.AudioTranscript,
		Severity:        string(report.Severity),
		Duration:        report.Duration,
		Status:          string(report.Status),
		ReviewedBy:      OptionalUserToRef(report.ReviewedBy, report.Reviewer),
		ReviewNotes:     report.ReviewNotes,
		CreatedAt:       report.CreatedAt,
		UpdatedAt:       report.UpdatedAt,
	}

	if !report.AIAnalysis.IsZero() {
		ai := &dto.AIAnalysisResponse{
			PossibleConditions: stringsOrEmpty(report.AIAnalysis.PossibleConditions),
			RecommendedActions: stringsOrEmpty(report.AIAnalysis.RecommendedActions),
		}
		if report.AIAnalysis.UrgencyLevel != nil {
			level := string(*report.AIAnalysis.UrgencyLevel)
			ai.UrgencyLevel = &level
		}
		response.AIAnalysis = ai
	}

	return response
}

// ReportsToResponses converts a slice of SymptomReport entities to slice of ReportResponse DTOs
func ReportsToResponses(reports []entity.SymptomReport) []dto.ReportResponse {
	responses := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		responses[i] = *ReportToResponse(&reports[i])
	}
	return responses
}

// ReportToRef returns an expanded reference when report was loaded, otherwise a bare id.
func ReportToRef(id uuid.UUID, report *entity.SymptomReport) dto.ReportRef {
	ref := dto.ReportRef{ID: id}
	if report == nil || report.ID == uuid.Nil {
		return ref
	}

	ref.Report = &dto.ReportSummary{
		Symptoms:  stringsOrEmpty(report.Symptoms),
		Severity:  string(report.Severity),
		Status:    string(report.Status),
		CreatedAt: report.CreatedAt,
	}
	return ref
}
