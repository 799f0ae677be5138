package middleware

import (
	"context"
	"net/http"
	"strings"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/service"
	"telehealth-api/pkg/jwt"
	"telehealth-api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleKey      contextKey = "role"
	TokenIDKey   contextKey = "token_id"
)

type AuthMiddleware struct {
	log          *logrus.Logger
	jwtService   *jwt.JWTService
	sessionStore service.SessionStore
}

func NewAuthMiddleware(log *logrus.Logger, jwtService *jwt.JWTService, sessionStore service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		log:          log,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		if !entity.IsValidRole(claims.Role) {
			response.Unauthorized(w, "Invalid token role")
			return
		}

		// Revoked on logout
		exists, err := m.sessionStore.Exists(r.Context(), jwt.AccessToken, claims.UserID, claims.TokenID)
		if err != nil {
			m.log.Warnf("Failed to check access token session: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !exists {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := ContextWithIdentity(r.Context(), entity.Identity{UserID: claims.UserID, Role: claims.Role})
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextWithIdentity stores the authenticated caller on ctx.
func ContextWithIdentity(ctx context.Context, identity entity.Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, identity.UserID)
	return context.WithValue(ctx, RoleKey, identity.Role)
}

// GetIdentityFromContext returns the caller set by Authenticate.
func GetIdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return entity.Identity{}, false
	}
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return entity.Identity{}, false
	}
	return entity.Identity{UserID: userID, Role: role}, true
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetRoleFromContext extracts the role name from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
