package handler

import (
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type SymptomReportHandler struct {
	reportUsecase usecase.SymptomReportUsecase
	validator     *validator.CustomValidator
}

func NewSymptomReportHandler(reportUsecase usecase.SymptomReportUsecase, validator *validator.CustomValidator) *SymptomReportHandler {
	return &SymptomReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func (h *SymptomReportHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrReportNotFound):
		response.NotFound(w, "Symptom report not found")
	case errors.Is(err, usecase.ErrReportAccessDenied):
		response.Forbidden(w, "Access denied")
	case errors.Is(err, usecase.ErrReportPatientOnly), errors.Is(err, usecase.ErrReportDoctorOnly):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback, err)
	}
}

func (h *SymptomReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.reportUsecase.Create(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create symptom report")
		return
	}

	response.Success(w, http.StatusCreated, "Symptom report created successfully", report)
}

// GetReports handles GET /reports?status=&severity=&page=&limit=
func (h *SymptomReportHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	fields := map[string]string{}
	query := dto.ReportListQuery{
		Status:   r.URL.Query().Get("status"),
		Severity: r.URL.Query().Get("severity"),
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

	reports, err := h.reportUsecase.List(r.Context(), caller, &query)
	if err != nil {
		h.writeError(w, err, "Failed to get symptom reports")
		return
	}

	response.Success(w, http.StatusOK, "Symptom reports retrieved successfully", reports)
}

func (h *SymptomReportHandler) GetPatientReports(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	reports, err := h.reportUsecase.ListByPatient(r.Context(), caller, patientID)
	if err != nil {
		h.writeError(w, err, "Failed to get patient symptom reports")
		return
	}

	response.Success(w, http.StatusOK, "Symptom reports retrieved successfully", reports)
}

func (h *SymptomReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	reportID, ok := pathUUID(w, r, "id", "report")
	if !ok {
		return
	}

	report, err := h.reportUsecase.GetByID(r.Context(), caller, reportID)
	if err != nil {
		h.writeError(w, err, "Failed to get symptom report")
		return
	}

	response.Success(w, http.StatusOK, "Symptom report retrieved successfully", report)
}

func (h *SymptomReportHandler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	reportID, ok := pathUUID(w, r, "id", "report")
	if !ok {
		return
	}

	var req dto.ReviewReportRequest
	if !decodeUpdateBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.reportUsecase.Review(r.Context(), caller, reportID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update symptom report")
		return
	}

	response.Success(w, http.StatusOK, "Symptom report updated successfully", report)
}

func (h *SymptomReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	reportID, ok := pathUUID(w, r, "id", "report")
	if !ok {
		return
	}

	if err := h.reportUsecase.Delete(r.Context(), caller, reportID); err != nil {
		h.writeError(w, err, "Failed to delete symptom report")
		return
	}

	response.Success(w, http.StatusOK, "Symptom report deleted successfully", nil)
}
