package service

import (
	"testing"

	"telehealth-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionKey(t *testing.T) {
	userID := uuid.MustParse("0b7d3c0e-4a5e-4f43-9b55-3f3b5a8f1d21")

	assert.Equal(t, "access_token:0b7d3c0e-4a5e-4f43-9b55-3f3b5a8f1d21:jti-1", SessionKey(jwt.AccessToken, userID, "jti-1"))
	assert.Equal(t, "refresh_token:0b7d3c0e-4a5e-4f43-9b55-3f3b5a8f1d21:jti-2", SessionKey(jwt.RefreshToken, userID, "jti-2"))
}
