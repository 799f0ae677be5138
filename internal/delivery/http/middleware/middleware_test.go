package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"telehealth-api/config"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSessionStore struct {
	valid map[string]bool
}

func (s *staticSessionStore) Save(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.valid[tokenID] = true
	return nil
}

func (s *staticSessionStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	return s.valid[tokenID], nil
}

func (s *staticSessionStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	delete(s.valid, tokenID)
	return nil
}

func newAuthFixture() (*AuthMiddleware, *jwt.JWTService, *staticSessionStore) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour, RefreshExpiry: time.Hour})
	store := &staticSessionStore{valid: map[string]bool{}}
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return NewAuthMiddleware(log, jwtService, store), jwtService, store
}

func identityEcho(got *entity.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = GetIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	m, jwtService, store := newAuthFixture()
	userID := uuid.New()

	access, accessID, err := jwtService.GenerateAccessToken(userID, "p@example.com", entity.RolePatient)
	require.NoError(t, err)
	refresh, refreshID, err := jwtService.GenerateRefreshToken(userID, "p@example.com", entity.RolePatient)
	require.NoError(t, err)
	revoked, _, err := jwtService.GenerateAccessToken(userID, "p@example.com", entity.RolePatient)
	require.NoError(t, err)
	store.valid[accessID] = true
	store.valid[refreshID] = true

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Token " + access, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + refresh, status: http.StatusUnauthorized},
		{name: "revoked session", header: "Bearer " + revoked, status: http.StatusUnauthorized},
		{name: "valid access token", header: "Bearer " + access, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got entity.Identity
			req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(identityEcho(&got)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, entity.Identity{UserID: userID, Role: entity.RolePatient}, got)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name   string
		ctx    context.Context
		status int
	}{
		{name: "no identity", ctx: context.Background(), status: http.StatusUnauthorized},
		{name: "patient", ctx: ContextWithIdentity(context.Background(), entity.Identity{UserID: uuid.New(), Role: entity.RolePatient}), status: http.StatusForbidden},
		{name: "doctor", ctx: ContextWithIdentity(context.Background(), entity.Identity{UserID: uuid.New(), Role: entity.RoleDoctor}), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", nil).WithContext(tt.ctx)
			rec := httptest.NewRecorder()

			RequireDoctor(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()

		NewCORSMiddleware([]string{"https://app.example.com"}).Handle(next).ServeHTTP(rec, req)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		NewCORSMiddleware([]string{"https://app.example.com"}).Handle(next).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rec := httptest.NewRecorder()

		NewCORSMiddleware(nil).Handle(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDAndRecovery(t *testing.T) {
	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	log.SetFormatter(&logrus.JSONFormatter{})

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	})
	handler := RequestID(Logging(log)(Recovery(log)(panicking)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, logs.String(), `"panic":"nil map write"`)
	assert.Contains(t, logs.String(), `"status":500`)
	assert.Contains(t, logs.String(), `"request_id":"req-42"`)
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}
