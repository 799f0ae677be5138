package handler

import (
	"context"
	"net/http"
	"testing"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockDoctorUsecase struct {
	mock.Mock
}

func (m *mockDoctorUsecase) List(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.(*dto.DoctorListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.DoctorResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDoctorHandler_GetDoctors(t *testing.T) {
	uc := &mockDoctorUsecase{}
	h := NewDoctorHandler(uc, validator.NewValidator())
	uc.On("List", mock.Anything, &dto.DoctorListQuery{Search: "lee", Page: 1, Limit: 20}).
		Return(&dto.DoctorListResponse{Doctors: []dto.DoctorResponse{}}, nil)

	rec, _ := serve(t, http.MethodGet, "/doctors", "/doctors?search=lee", "", patient(), h.GetDoctors)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, http.MethodGet, "/doctors", "/doctors?limit=ten", "", patient(), h.GetDoctors)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNumberOfCalls(t, "List", 1)
}

func TestDoctorHandler_GetDoctor_NotFound(t *testing.T) {
	uc := &mockDoctorUsecase{}
	h := NewDoctorHandler(uc, validator.NewValidator())
	id := uuid.New()
	uc.On("GetByID", mock.Anything, id).Return(nil, usecase.ErrDoctorNotFound)

	rec, resp := serve(t, http.MethodGet, "/doctors/{id}", "/doctors/"+id.String(), "", patient(), h.GetDoctor)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Doctor not found", resp.Message)
}
