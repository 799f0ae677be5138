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

func newTestAuthHandler() (*AuthHandler, *mockAuthUsecase, *mockProfileUsecase) {
	auth := &mockAuthUsecase{}
	profile := &mockProfileUsecase{}
	return NewAuthHandler(auth, profile, validator.NewValidator()), auth, profile
}

const registerBody = `{"email":"ana@example.com","password":"secret1","firstName":"Ana","lastName":"Lima","role":"patient"}`

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		ucErr   error
		status  int
		message string
	}{
		{name: "malformed body", body: `{"email":`, status: http.StatusBadRequest, message: "Invalid request body"},
		{name: "bad role", body: `{"email":"ana@example.com","password":"secret1","firstName":"Ana","lastName":"Lima","role":"admin"}`, status: http.StatusBadRequest, message: "Validation failed"},
		{name: "duplicate email", body: registerBody, ucErr: usecase.ErrEmailAlreadyExists, status: http.StatusBadRequest, message: "Email already exists"},
		{name: "usecase validation", body: registerBody, ucErr: &usecase.ValidationError{Fields: map[string]string{"dateOfBirth": "invalid"}}, status: http.StatusBadRequest, message: "Validation failed"},
		{name: "store failure", body: registerBody, ucErr: errors.New("db down"), status: http.StatusInternalServerError, message: "Failed to register user"},
		{name: "success", body: registerBody, status: http.StatusCreated, message: "User registered successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, auth, _ := newTestAuthHandler()
			if tt.ucErr != nil {
				auth.On("Register", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			} else {
				auth.On("Register", mock.Anything, mock.Anything).Return(&dto.AuthResponse{
					User: &dto.UserResponse{ID: uuid.New(), Email: "ana@example.com", Role: "patient"},
				}, nil)
			}

			rec, resp := serve(t, http.MethodPost, "/auth/register", "/auth/register", tt.body, nil, h.Register)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, auth, _ := newTestAuthHandler()
	auth.On("Login", mock.Anything, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}).Return(nil, usecase.ErrInvalidCredentials)

	rec, resp := serve(t, http.MethodPost, "/auth/login", "/auth/login", `{"email":"ana@example.com","password":"wrong"}`, nil, h.Login)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp.Message)
}

func TestAuthHandler_RefreshToken_Revoked(t *testing.T) {
	h, auth, _ := newTestAuthHandler()
	auth.On("RefreshToken", mock.Anything, mock.Anything).Return(nil, usecase.ErrTokenRevoked)

	rec, resp := serve(t, http.MethodPost, "/auth/refresh-token", "/auth/refresh-token", `{"refreshToken":"abc"}`, nil, h.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, usecase.ErrTokenRevoked.Error(), resp.Message)
}

func TestAuthHandler_Logout_RequiresToken(t *testing.T) {
	h, auth, _ := newTestAuthHandler()

	rec, resp := serve(t, http.MethodPost, "/auth/logout", "/auth/logout", "", patient(), h.Logout)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", resp.Message)
	auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_GetCurrentUser_NotFound(t *testing.T) {
	h, auth, _ := newTestAuthHandler()
	caller := patient()
	auth.On("GetCurrentUser", mock.Anything, caller.UserID).Return(nil, usecase.ErrUserNotFound)

	rec, resp := serve(t, http.MethodGet, "/auth/me", "/auth/me", "", caller, h.GetCurrentUser)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", resp.Message)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	caller := patient()

	tests := []struct {
		name    string
		body    string
		ucErr   error
		status  int
		message string
	}{
		{name: "role is not updatable", body: `{"firstName":"Ana","role":"doctor"}`, status: http.StatusBadRequest, message: "Invalid updates"},
		{name: "email is not updatable", body: `{"email":"new@example.com"}`, status: http.StatusBadRequest, message: "Invalid updates"},
		{name: "bad gender", body: `{"gender":"unknown"}`, status: http.StatusBadRequest, message: "Validation failed"},
		{name: "role-restricted field", body: `{"specialization":"Cardiology"}`, ucErr: &usecase.ValidationError{Fields: map[string]string{"specialization": "doctors only"}}, status: http.StatusBadRequest, message: "Validation failed"},
		{name: "user gone", body: `{"firstName":"Ana"}`, ucErr: usecase.ErrUserNotFound, status: http.StatusNotFound, message: "User not found"},
		{name: "success", body: `{"firstName":"Ana"}`, status: http.StatusOK, message: "Profile updated successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, profile := newTestAuthHandler()
			if tt.ucErr != nil {
				profile.On("UpdateProfile", mock.Anything, *caller, mock.Anything).Return(nil, tt.ucErr)
			} else {
				profile.On("UpdateProfile", mock.Anything, *caller, mock.Anything).Return(&dto.UserResponse{ID: caller.UserID, FirstName: "Ana"}, nil)
			}

			rec, resp := serve(t, http.MethodPatch, "/auth/me", "/auth/me", tt.body, caller, h.UpdateProfile)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, resp.Message)
			if tt.message == "Invalid updates" {
				profile.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
