package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

func prescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}
	meds := make([]dto.MedicationResponse, len(p.Medications))
	for i, m := range p.Medications {
		meds[i] = dto.MedicationResponse{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
			Instructions: m.Instructions,
		}
	}
	return &dto.PrescriptionResponse{Medications: meds, Notes: p.Notes}
}

func followUpToResponse(f *entity.FollowUp) *dto.FollowUpResponse {
	if f == nil {
		return nil
	}
	return &dto.FollowUpResponse{
		Required:      f.Required,
		ScheduledDate: f.ScheduledDate,
		Instructions:  f.Instructions,
	}
}

// ConsultationToResponse converts a Consultation entity to ConsultationResponse DTO
func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:           c.ID,
		Patient:      UserToRef(c.PatientID, c.Patient),
		Doctor:       UserToRef(c.DoctorID, c.Doctor),
		ScheduledAt:  c.ScheduledAt,
		Status:       string(c.Status),
		Type:         string(c.Type),
		Notes:        c.Notes,
		Prescription: prescriptionToResponse(c.Prescription),
		FollowUp:     followUpToResponse(c.FollowUp),
		Duration:     c.Duration,
		MeetingURL:   c.MeetingURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.ReportID != nil {
		ref := ReportToRef(*c.ReportID, c.Report)
		response.Report = &ref
	}

	return response
}

// ConsultationsToResponses converts a slice of Consultation entities to slice of ConsultationResponse DTOs
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}
