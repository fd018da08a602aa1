package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := GenerateToken("user-123")
	require.NoError(t, err)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestGetUserIDFromToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := GenerateToken("user-123")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	userID, err := GetUserIDFromToken(r)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)

	r = httptest.NewRequest("GET", "/api/me", nil)
	_, err = GetUserIDFromToken(r)
	require.Error(t, err)

	r.Header.Set("Authorization", "Bearer not-a-token")
	_, err = GetUserIDFromToken(r)
	require.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := GenerateToken("user-123")
	require.Error(t, err)
}
