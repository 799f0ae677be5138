package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAlertUsecase struct {
	mock.Mock
}

func (m *mockAlertUsecase) Create(ctx context.Context, actor entity.Identity, req *dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	args := m.Called(ctx, actor, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.AlertResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlertUsecase) List(ctx context.Context, viewer entity.Identity, query *dto.AlertListQuery) (*dto.AlertListResponse, error) {
	args := m.Called(ctx, viewer, query)
	if v := args.Get(0); v != nil {
		return v.(*dto.AlertListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlertUsecase) GetByID(ctx context.Context, viewer entity.Identity, id uuid.UUID) (*dto.AlertResponse, error) {
	args := m.Called(ctx, viewer, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.AlertResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlertUsecase) MarkRead(ctx context.Context, viewer entity.Identity, id uuid.UUID) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *mockAlertUsecase) Update(ctx context.Context, actor entity.Identity, id uuid.UUID, req *dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.AlertResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlertUsecase) Delete(ctx context.Context, actor entity.Identity, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockAlertUsecase) UnreadCount(ctx context.Context, viewer entity.Identity) (*dto.UnreadCountResponse, error) {
	args := m.Called(ctx, viewer)
	if v := args.Get(0); v != nil {
		return v.(*dto.UnreadCountResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockConsultationUsecase struct {
	mock.Mock
}

func (m *mockConsultationUsecase) Create(ctx context.Context, caller entity.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, caller, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.ConsultationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConsultationUsecase) List(ctx context.Context, caller entity.Identity, query *dto.ConsultationListQuery) (*dto.ConsultationListResponse, error) {
	args := m.Called(ctx, caller, query)
	if v := args.Get(0); v != nil {
		return v.(*dto.ConsultationListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConsultationUsecase) GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, caller, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.ConsultationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConsultationUsecase) Update(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.UpdateConsultationRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, caller, id, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.ConsultationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConsultationUsecase) Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

type mockLabResultUsecase struct {
	mock.Mock
}

func (m *mockLabResultUsecase) Create(ctx context.Context, caller entity.Identity, req *dto.CreateLabResultRequest) (*dto.LabResultResponse, error) {
	args := m.Called(ctx, caller, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.LabResultResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLabResultUsecase) List(ctx context.Context, caller entity.Identity, query *dto.LabResultListQuery) (*dto.LabResultListResponse, error) {
	args := m.Called(ctx, caller, query)
	if v := args.Get(0); v != nil {
		return v.(*dto.LabResultListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLabResultUsecase) GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.LabResultResponse, error) {
	args := m.Called(ctx, caller, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.LabResultResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLabResultUsecase) Update(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.UpdateLabResultRequest) (*dto.LabResultResponse, error) {
	args := m.Called(ctx, caller, id, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.LabResultResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLabResultUsecase) Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

type mockSymptomReportUsecase struct {
	mock.Mock
}

func (m *mockSymptomReportUsecase) Create(ctx context.Context, caller entity.Identity, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	args := m.Called(ctx, caller, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.ReportResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSymptomReportUsecase) List(ctx context.Context, caller entity.Identity, query *dto.ReportListQuery) (*dto.ReportListResponse, error) {
	args := m.Called(ctx, caller, query)
	if v := args.Get(0); v != nil {
		return v.(*dto.ReportListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSymptomReportUsecase) ListByPatient(ctx context.Context, caller entity.Identity, patientID uuid.UUID) ([]dto.ReportResponse, error) {
	args := m.Called(ctx, caller, patientID)
	reports, _ := args.Get(0).([]dto.ReportResponse)
	return reports, args.Error(1)
}

func (m *mockSymptomReportUsecase) GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.ReportResponse, error) {
	args := m.Called(ctx, caller, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.ReportResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSymptomReportUsecase) Review(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.ReviewReportRequest) (*dto.ReportResponse, error) {
	args := m.Called(ctx, caller, id, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.ReportResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSymptomReportUsecase) Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error {
	return m.Called(ctx, userID, accessTokenID, refreshToken).Error(0)
}

func (m *mockAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*dto.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProfileUsecase struct {
	mock.Mock
}

func (m *mockProfileUsecase) UpdateProfile(ctx context.Context, caller entity.Identity, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, caller, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// serve routes a request through a mux router so path variables resolve the
// same way they do in production.
func serve(t *testing.T, method, pattern, target, body string, caller *entity.Identity, h http.HandlerFunc) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req = req.WithContext(middleware.ContextWithIdentity(req.Context(), *caller))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func doctor() *entity.Identity {
	return &entity.Identity{UserID: uuid.New(), Role: entity.RoleDoctor}
}

func patient() *entity.Identity {
	return &entity.Identity{UserID: uuid.New(), Role: entity.RolePatient}
}
