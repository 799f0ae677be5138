package handler

import (
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type AlertHandler struct {
	alertUsecase usecase.AlertUsecase
	validator    *validator.CustomValidator
}

func NewAlertHandler(alertUsecase usecase.AlertUsecase, validator *validator.CustomValidator) *AlertHandler {
	return &AlertHandler{
		alertUsecase: alertUsecase,
		validator:    validator,
	}
}

func (h *AlertHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrAlertNotFound):
		response.NotFound(w, "Alert not found")
	case errors.Is(err, usecase.ErrAlertAccessDenied):
		response.Forbidden(w, "Access denied")
	case errors.Is(err, usecase.ErrAlertDoctorOnly):
		response.Forbidden(w, "Only doctors can manage alerts")
	case errors.Is(err, usecase.ErrAlertReactivation):
		response.Error(w, http.StatusBadRequest, "A deactivated alert cannot be reactivated", nil)
	default:
		response.InternalError(w, fallback, err)
	}
}

// CreateAlert handles POST /alerts
// @Summary Create an alert
// @Tags Alerts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAlertRequest true "Create Alert Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /alerts [post]
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateAlertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	alert, err := h.alertUsecase.Create(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create alert")
		return
	}

	response.Success(w, http.StatusCreated, "Alert created successfully", alert)
}

// GetAlerts handles GET /alerts?type=&severity=&isActive=&page=&limit=
func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	fields := map[string]string{}
	query := dto.AlertListQuery{
		Type:     r.URL.Query().Get("type"),
		Severity: r.URL.Query().Get("severity"),
		IsActive: queryBool(r, "isActive", true, fields),
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

	alerts, err := h.alertUsecase.List(r.Context(), caller, &query)
	if err != nil {
		h.writeError(w, err, "Failed to get alerts")
		return
	}

	response.Success(w, http.StatusOK, "Alerts retrieved successfully", alerts)
}

// GetUnreadCount handles GET /alerts/unread-count
func (h *AlertHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	count, err := h.alertUsecase.UnreadCount(r.Context(), caller)
	if err != nil {
		h.writeError(w, err, "Failed to count unread alerts")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", count)
}

func (h *AlertHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "id", "alert")
	if !ok {
		return
	}

	alert, err := h.alertUsecase.GetByID(r.Context(), caller, alertID)
	if err != nil {
		h.writeError(w, err, "Failed to get alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert retrieved successfully", alert)
}

func (h *AlertHandler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "id", "alert")
	if !ok {
		return
	}

	if err := h.alertUsecase.MarkRead(r.Context(), caller, alertID); err != nil {
		h.writeError(w, err, "Failed to mark alert as read")
		return
	}

	response.Success(w, http.StatusOK, "Alert marked as read", nil)
}

// UpdateAlert handles PATCH /alerts/{id}; keys outside title, message, severity,
// isActive, expiresAt and metadata are rejected.
func (h *AlertHandler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "id", "alert")
	if !ok {
		return
	}

	var req dto.UpdateAlertRequest
	if !decodeUpdateBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	alert, err := h.alertUsecase.Update(r.Context(), caller, alertID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert updated successfully", alert)
}

func (h *AlertHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "id", "alert")
	if !ok {
		return
	}

	if err := h.alertUsecase.Delete(r.Context(), caller, alertID); err != nil {
		h.writeError(w, err, "Failed to delete alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert deleted successfully", nil)
}
