package handler

import (
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type LabResultHandler struct {
	labResultUsecase usecase.LabResultUsecase
	validator        *validator.CustomValidator
}

func NewLabResultHandler(labResultUsecase usecase.LabResultUsecase, validator *validator.CustomValidator) *LabResultHandler {
	return &LabResultHandler{
		labResultUsecase: labResultUsecase,
		validator:        validator,
	}
}

func (h *LabResultHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrLabResultNotFound):
		response.NotFound(w, "Lab result not found")
	case errors.Is(err, usecase.ErrLabResultAccessDenied):
		response.Forbidden(w, "Access denied")
	case errors.Is(err, usecase.ErrLabResultDoctorOnly):
		response.Forbidden(w, "Only doctors can manage lab results")
	default:
		response.InternalError(w, fallback, err)
	}
}

func (h *LabResultHandler) CreateLabResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateLabResultRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	labResult, err := h.labResultUsecase.Create(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create lab result")
		return
	}

	response.Success(w, http.StatusCreated, "Lab result created successfully", labResult)
}

// GetLabResults handles GET /lab-results?patientId=&status=&testName=&page=&limit=
func (h *LabResultHandler) GetLabResults(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	fields := map[string]string{}
	query := dto.LabResultListQuery{
		PatientID: r.URL.Query().Get("patientId"),
		Status:    r.URL.Query().Get("status"),
		TestName:  r.URL.Query().Get("testName"),
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

	labResults, err := h.labResultUsecase.List(r.Context(), caller, &query)
	if err != nil {
		h.writeError(w, err, "Failed to get lab results")
		return
	}

	response.Success(w, http.StatusOK, "Lab results retrieved successfully", labResults)
}

func (h *LabResultHandler) GetLabResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	labResultID, ok := pathUUID(w, r, "id", "lab result")
	if !ok {
		return
	}

	labResult, err := h.labResultUsecase.GetByID(r.Context(), caller, labResultID)
	if err != nil {
		h.writeError(w, err, "Failed to get lab result")
		return
	}

	response.Success(w, http.StatusOK, "Lab result retrieved successfully", labResult)
}

func (h *LabResultHandler) UpdateLabResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	labResultID, ok := pathUUID(w, r, "id", "lab result")
	if !ok {
		return
	}

	var req dto.UpdateLabResultRequest
	if !decodeUpdateBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	labResult, err := h.labResultUsecase.Update(r.Context(), caller, labResultID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update lab result")
		return
	}

	response.Success(w, http.StatusOK, "Lab result updated successfully", labResult)
}

func (h *LabResultHandler) DeleteLabResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	labResultID, ok := pathUUID(w, r, "id", "lab result")
	if !ok {
		return
	}

	if err := h.labResultUsecase.Delete(r.Context(), caller, labResultID); err != nil {
		h.writeError(w, err, "Failed to delete lab result")
		return
	}

	response.Success(w, http.StatusOK, "Lab result deleted successfully", nil)
}
