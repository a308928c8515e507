package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "operator-1",
		"role": role,
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func protectedEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth(t *testing.T) {
	chain := JWTAuth(testSecret)(protectedEndpoint())

	t.Run("missing bearer token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rooms", nil)
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rooms", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"})
		signed, err := other.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	chain := JWTAuth(testSecret)(RequireRole("admin", "super_admin")(protectedEndpoint()))

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("viewer forbidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "viewer"))
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role claim forbidden", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "operator-1"})
		signed, err := token.SignedString([]byte(testSecret))
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
