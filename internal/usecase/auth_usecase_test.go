package usecase

import (
	"context"
	"testing"
	"time"

	"telehealth-api/config"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	uc       *authUsecase
	users    *mockUserRepository
	sessions *memorySessionStore
	jwt      *jwt.JWTService
	audit    *auditRecorder
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    &mockUserRepository{},
		sessions: newMemorySessionStore(),
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  time.Hour,
			RefreshExpiry: 24 * time.Hour,
		}),
		audit: &auditRecorder{},
	}
	f.uc = NewAuthUsecase(testLogger(), f.users, f.jwt, f.sessions, f.audit).(*authUsecase)
	f.uc.bcryptCost = bcrypt.MinCost
	return f
}

func (f *authFixture) storedUser(t *testing.T, role, password string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:        uuid.New(),
		Email:     "ada@example.com",
		Password:  string(hash),
		FirstName: "Ada",
		LastName:  "Obi",
		Role:      role,
	}
}

func TestAuthUsecase_Register_Patient(t *testing.T) {
	f := newAuthFixture()
	dob := "1990-05-17"
	newID := uuid.New()

	f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ada@example.com" && u.Password != "secret1" &&
			u.DateOfBirth != nil && u.DateOfBirth.Format("2006-01-02") == dob
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = newID
	}).Return(nil)

	resp, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "  Ada@Example.com ",
		Password:    "secret1",
		FirstName:   "Ada",
		LastName:    "Obi",
		Role:        entity.RolePatient,
		DateOfBirth: &dob,
	})

	require.NoError(t, err)
	assert.Equal(t, newID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, []string{entity.AuditActionUserRegister}, f.audit.Actions())

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	exists, _ := f.sessions.Exists(context.Background(), jwt.AccessToken, newID, claims.TokenID)
	assert.True(t, exists)
}

func TestAuthUsecase_Register_RoleFieldRules(t *testing.T) {
	f := newAuthFixture()
	specialty := "Cardiology"
	gender := "female"

	tests := []struct {
		name  string
		req   *dto.RegisterRequest
		field string
	}{
		{
			name:  "doctor without specialization",
			req:   &dto.RegisterRequest{Email: "d@example.com", Password: "secret1", Role: entity.RoleDoctor},
			field: "specialization",
		},
		{
			name:  "doctor with gender",
			req:   &dto.RegisterRequest{Email: "d@example.com", Password: "secret1", Role: entity.RoleDoctor, Specialization: &specialty, Gender: &gender},
			field: "role",
		},
		{
			name:  "patient with specialization",
			req:   &dto.RegisterRequest{Email: "p@example.com", Password: "secret1", Role: entity.RolePatient, Specialization: &specialty},
			field: "specialization",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Register(context.Background(), tt.req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.field)
		})
	}
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	t.Run("found before insert", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&entity.User{ID: uuid.New()}, nil)

		_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Email: "ada@example.com", Password: "secret1", Role: entity.RolePatient})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, nil)
		f.users.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

		_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Email: "ada@example.com", Password: "secret1", Role: entity.RolePatient})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	f := newAuthFixture()
	user := f.storedUser(t, entity.RoleDoctor, "secret1")
	f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, entity.RoleDoctor, resp.User.Role)
}

func TestAuthUsecase_RefreshToken_RotatesPair(t *testing.T) {
	f := newAuthFixture()
	user := f.storedUser(t, entity.RolePatient, "secret1")
	f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	rotated, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The old refresh token was revoked by the rotation
	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// Access tokens cannot be used to refresh
	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthUsecase_Logout(t *testing.T) {
	f := newAuthFixture()
	user := f.storedUser(t, entity.RolePatient, "secret1")
	f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	login, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	access, err := f.jwt.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateToken(login.RefreshToken)
	require.NoError(t, err)

	// Another user's refresh token is refused
	assert.ErrorIs(t, f.uc.Logout(context.Background(), uuid.New(), "x", login.RefreshToken), ErrInvalidToken)

	require.NoError(t, f.uc.Logout(context.Background(), user.ID, access.TokenID, login.RefreshToken))

	exists, _ := f.sessions.Exists(context.Background(), jwt.AccessToken, user.ID, access.TokenID)
	assert.False(t, exists)
	exists, _ = f.sessions.Exists(context.Background(), jwt.RefreshToken, user.ID, refresh.TokenID)
	assert.False(t, exists)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	f := newAuthFixture()
	missing := uuid.New()
	f.users.On("FindByID", mock.Anything, missing).Return(nil, nil)

	_, err := f.uc.GetCurrentUser(context.Background(), missing)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
