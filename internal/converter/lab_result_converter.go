package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// LabResultToResponse converts a LabResult entity to LabResultResponse DTO
func LabResultToResponse(l *entity.LabResult) *dto.LabResultResponse {
	if l == nil {
		return nil
	}

	response := &dto.LabResultResponse{
		ID:          l.ID,
		Patient:     UserToRef(l.PatientID, l.Patient),
		OrderedBy:   OptionalUserToRef(l.OrderedBy, l.Orderer),
		TestName:    l.TestName,
		TestDate:    l.TestDate,
		Results:     l.Results,
		DoctorNotes: l.DoctorNotes,
		FileURL:     l.FileURL,
		NormalRange: l.NormalRange,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}

	if l.LabFacility != nil {
		response.LabFacility = &dto.LabFacilityResponse{
			Name:    l.LabFacility.Name,
			Address: l.LabFacility.Address,
			Contact: l.LabFacility.Contact,
		}
	}

	return response
}

// LabResultsToResponses converts a slice of LabResult entities to slice of LabResultResponse DTOs
func LabResultsToResponses(labResults []entity.LabResult) []dto.LabResultResponse {
	responses := make([]dto.LabResultResponse, len(labResults))
	for i := range labResults {
		responses[i] = *LabResultToResponse(&labResults[i])
	}
	return responses
}
