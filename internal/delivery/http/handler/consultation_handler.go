package handler

import (
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrConsultationNotFound):
		response.NotFound(w, "Consultation not found")
	case errors.Is(err, usecase.ErrConsultationAccessDenied):
		response.Forbidden(w, "Access denied")
	case errors.Is(err, usecase.ErrConsultationPatientCancelOnly):
		response.Forbidden(w, "Patients can only cancel consultations")
	default:
		response.InternalError(w, fallback, err)
	}
}

func (h *ConsultationHandler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateConsultationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Create(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create consultation")
		return
	}

	response.Success(w, http.StatusCreated, "Consultation created successfully", consultation)
}

// GetConsultations handles GET /consultations?status=&type=&date=&page=&limit=
func (h *ConsultationHandler) GetConsultations(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	fields := map[string]string{}
	query := dto.ConsultationListQuery{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
		Date:   r.URL.Query().Get("date"),
	}
	query.Page, query.Limit = pageParams(r, fields)
	if len(fields) > 0 {
		response.ValidationError(w, fields)
		return
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultations, err := h.consultationUsecase.List(r.Context(), caller, &query)
	if err != nil {
		h.writeError(w, err, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	consultationID, ok := pathUUID(w, r, "id", "consultation")
	if !ok {
		return
	}

	consultation, err := h.consultationUsecase.GetByID(r.Context(), caller, consultationID)
	if err != nil {
		h.writeError(w, err, "Failed to get consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

// UpdateConsultation handles PATCH /consultations/{id}. Patients may only send {"status":"cancelled"}.
func (h *ConsultationHandler) UpdateConsultation(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	consultationID, ok := pathUUID(w, r, "id", "consultation")
	if !ok {
		return
	}

	var req dto.UpdateConsultationRequest
	if !decodeUpdateBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Update(r.Context(), caller, consultationID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation updated successfully", consultation)
}

func (h *ConsultationHandler) DeleteConsultation(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	consultationID, ok := pathUUID(w, r, "id", "consultation")
	if !ok {
		return
	}

	if err := h.consultationUsecase.Delete(r.Context(), caller, consultationID); err != nil {
		h.writeError(w, err, "Failed to delete consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation deleted successfully", nil)
}
