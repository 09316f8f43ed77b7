package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	"github.com/aviationlaunchpad/launchpad/internal/jwt"
)

func testToken(t *testing.T, j *jwt.Jwt) string {
	t.Helper()
	token, err := j.NewToken(domain.Account{
		Id:    "acc-1",
		Email: "pilot@example.com",
		Name:  "Alex",
		Role:  domain.RoleMember,
	})
	require.NoError(t, err)
	return token
}

func echoUser(t *testing.T) (http.Handler, **domain.SessionUser) {
	t.Helper()
	var captured *domain.SessionUser
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
	return h, &captured
}

func TestNeedAuth_Cookie(t *testing.T) {
	j := jwt.New("secret", time.Hour)
	auth := NewAuth(j)
	next, captured := echoUser(t)

	req := httptest.NewRequest("GET", "/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: testToken(t, j)})
	rec := httptest.NewRecorder()

	auth.NeedAuth()(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, "acc-1", (*captured).Id)
	assert.Equal(t, domain.RoleMember, (*captured).Role)
}

func TestNeedAuth_BearerHeader(t *testing.T) {
	j := jwt.New("secret", time.Hour)
	auth := NewAuth(j)
	next, captured := echoUser(t)

	req := httptest.NewRequest("GET", "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, j))
	rec := httptest.NewRecorder()

	auth.NeedAuth()(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, "pilot@example.com", (*captured).Email)
}

func TestNeedAuth_Rejections(t *testing.T) {
	j := jwt.New("secret", time.Hour)
	auth := NewAuth(j)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
	}{
		{"no credentials", func(r *http.Request) {}},
		{"garbage cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
		}},
		{"wrong signing key", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: testToken(t, jwt.New("other", time.Hour))})
		}},
		{"expired token", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: testToken(t, jwt.New("secret", -time.Minute))})
		}},
		{"malformed header", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

			req := httptest.NewRequest("GET", "/v1/auth/me", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()

			auth.NeedAuth()(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestGetUserFromContext_WithoutAuth(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, GetUserFromContext(req))
}
