package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		// Add header as well to ensure cookie takes precedence
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "cookie_token", token)
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "header_token", token)
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "header_token", token)
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		token := ExtractAccessToken(req)
		assert.Empty(t, token)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		token := ExtractAccessToken(req)
		assert.Empty(t, token)
	})
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		tokenStr, err := GenerateJWT(42, "user@example.com", RoleAdmin)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenStr)

		claims, err := ParseJWT(tokenStr)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, RoleAdmin, claims.Role)
	})

	t.Run("Missing Secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := GenerateJWT(1, "a@b.c", RoleClient)
		assert.Error(t, err)

		_, err = ParseJWT("whatever")
		assert.Error(t, err)
	})

	t.Run("Tampered Token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		tokenStr, err := GenerateJWT(1, "a@b.c", RoleClient)
		assert.NoError(t, err)

		_, err = ParseJWT(tokenStr + "x")
		assert.Error(t, err)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret-one")
		tokenStr, err := GenerateJWT(1, "a@b.c", RoleClient)
		assert.NoError(t, err)

		t.Setenv("JWT_SECRET", "secret-two")
		_, err = ParseJWT(tokenStr)
		assert.Error(t, err)
	})
}

func TestUserContext(t *testing.T) {
	ctx := SetUserContext(t.Context(), 7, "c@d.e", RoleClient)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "c@d.e", GetUserEmailFromContext(ctx))
	assert.Equal(t, RoleClient, GetUserRoleFromContext(ctx))

	_, ok = GetUserIDFromContext(t.Context())
	assert.False(t, ok)
}
