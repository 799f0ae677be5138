package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

func geographicAreaToResponse(area entity.GeographicArea) *dto.GeographicAreaResponse {
	if area.IsZero() {
		return nil
	}

	response := &dto.GeographicAreaResponse{
		Country: area.Country,
		Region:  area.Region,
		City:    area.City,
		Radius:  area.RadiusKm,
	}
	if area.Longitude != nil && area.Latitude != nil {
		response.Coordinates = &dto.PointResponse{Longitude: *area.Longitude, Latitude: *area.Latitude}
	}
	return response
}

// AlertToResponse converts an Alert entity to AlertResponse DTO; isRead is the viewer's own read state
func AlertToResponse(alert *entity.Alert, isRead bool) *dto.AlertResponse {
	if alert == nil {
		return nil
	}

	targetUsers := make([]dto.UserRef, len(alert.TargetUsers))
	for i := range alert.TargetUsers {
		u := &alert.TargetUsers[i]
		targetUsers[i] = UserToRef(u.ID, u)
	}

	related := make([]dto.ReportRef, len(alert.RelatedReports))
	for i := range alert.RelatedReports {
		r := &alert.RelatedReports[i]
		related[i] = ReportToRef(r.ID, r)
	}

	return &dto.AlertResponse{
		ID:             alert.ID,
		Type:           string(alert.Type),
		Title:          alert.Title,
		Message:        alert.Message,
		Severity:       string(alert.Severity),
		TargetUsers:    targetUsers,
		TargetRoles:    stringsOrEmpty(alert.TargetRoles),
		GeographicArea: geographicAreaToResponse(alert.GeographicArea),
		Metadata: dto.AlertMetadataResponse{
			SymptomPattern: stringsOrEmpty(alert.SymptomPattern),
			AffectedCount:  alert.AffectedCount,
			RelatedReports: related,
		},
		ExpiresAt: alert.ExpiresAt,
		IsActive:  alert.IsActive,
		IsRead:    isRead,
		CreatedAt: alert.CreatedAt,
		UpdatedAt: alert.UpdatedAt,
	}
}

// AlertsToResponses converts alerts using the viewer's read receipts keyed by alert id
func AlertsToResponses(alerts []entity.Alert, read map[uuid.UUID]bool) []dto.AlertResponse {
	responses := make([]dto.AlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = *AlertToResponse(&alerts[i], read[alerts[i].ID])
	}
	return responses
}
