package handler

import (
	"errors"
	"net/http"
	"testing"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestSymptomReportHandler() (*SymptomReportHandler, *mockSymptomReportUsecase) {
	uc := &mockSymptomReportUsecase{}
	return NewSymptomReportHandler(uc, validator.NewValidator()), uc
}

func TestSymptomReportHandler_ReviewReport_UnknownFieldRejected(t *testing.T) {
	h, uc := newTestSymptomReportHandler()
	id := uuid.New()

	rec, resp := serve(t, http.MethodPatch, "/reports/{id}", "/reports/"+id.String(), `{"status":"reviewed","symptoms":["cough"]}`, doctor(), h.ReviewReport)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid updates", resp.Message)
	uc.AssertNotCalled(t, "Review", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSymptomReportHandler_ReviewReport(t *testing.T) {
	id := uuid.New()
	caller := doctor()

	tests := []struct {
		name    string
		target  string
		body    string
		ucErr   error
		status  int
		message string
	}{
		{name: "bad id", target: "/reports/nope", body: `{}`, status: http.StatusBadRequest, message: "Invalid report ID"},
		{name: "bad status", target: "/reports/" + id.String(), body: `{"status":"closed"}`, status: http.StatusBadRequest, message: "Validation failed"},
		{name: "not found", target: "/reports/" + id.String(), body: `{"status":"reviewed"}`, ucErr: usecase.ErrReportNotFound, status: http.StatusNotFound, message: "Symptom report not found"},
		{name: "doctor only", target: "/reports/" + id.String(), body: `{"status":"reviewed"}`, ucErr: usecase.ErrReportDoctorOnly, status: http.StatusForbidden, message: usecase.ErrReportDoctorOnly.Error()},
		{name: "store failure", target: "/reports/" + id.String(), body: `{"status":"reviewed"}`, ucErr: errors.New("db down"), status: http.StatusInternalServerError, message: "Failed to update symptom report"},
		{name: "success", target: "/reports/" + id.String(), body: `{"status":"reviewed","reviewNotes":"rest and fluids"}`, status: http.StatusOK, message: "Symptom report updated successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := newTestSymptomReportHandler()
			if tt.ucErr != nil {
				uc.On("Review", mock.Anything, *caller, id, mock.Anything).Return(nil, tt.ucErr)
			} else {
				uc.On("Review", mock.Anything, *caller, id, mock.Anything).Return(&dto.ReportResponse{ID: id, Status: "reviewed"}, nil)
			}

			rec, resp := serve(t, http.MethodPatch, "/reports/{id}", tt.target, tt.body, caller, h.ReviewReport)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestSymptomReportHandler_CreateReport_PatientOnly(t *testing.T) {
	h, uc := newTestSymptomReportHandler()
	caller := doctor()
	uc.On("Create", mock.Anything, *caller, mock.Anything).Return(nil, usecase.ErrReportPatientOnly)

	rec, resp := serve(t, http.MethodPost, "/reports", "/reports",
		`{"symptoms":["fever"],"description":"High fever since yesterday","severity":"moderate","duration":"1 day"}`, caller, h.CreateReport)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, usecase.ErrReportPatientOnly.Error(), resp.Message)
}

func TestSymptomReportHandler_GetPatientReports(t *testing.T) {
	t.Run("bad patient id", func(t *testing.T) {
		h, uc := newTestSymptomReportHandler()

		rec, resp := serve(t, http.MethodGet, "/reports/patient/{patientId}", "/reports/patient/abc", "", doctor(), h.GetPatientReports)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid patient ID", resp.Message)
		uc.AssertNotCalled(t, "ListByPatient", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other patient is denied", func(t *testing.T) {
		h, uc := newTestSymptomReportHandler()
		caller := patient()
		other := uuid.New()
		uc.On("ListByPatient", mock.Anything, *caller, other).Return(nil, usecase.ErrReportAccessDenied)

		rec, resp := serve(t, http.MethodGet, "/reports/patient/{patientId}", "/reports/patient/"+other.String(), "", caller, h.GetPatientReports)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Access denied", resp.Message)
	})
}
