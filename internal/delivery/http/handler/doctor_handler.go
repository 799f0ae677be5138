package handler

import (
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorProfileUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorProfileUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// GetDoctors handles GET /doctors?specialization=&search=&page=&limit=
func (h *DoctorHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	fields := map[string]string{}
	query := dto.DoctorListQuery{
		Specialization: r.URL.Query().Get("specialization"),
		Search:         r.URL.Query().Get("search"),
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

	doctors, err := h.doctorUsecase.List(r.Context(), &query)
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		response.InternalError(w, "Failed to get doctors", err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalError(w, "Failed to get doctor", err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}
