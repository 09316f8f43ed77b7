package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviationlaunchpad/launchpad/internal/api"
	"github.com/aviationlaunchpad/launchpad/internal/config"
	"github.com/aviationlaunchpad/launchpad/internal/setup"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Public: config.Public{
			Forum: config.Forum{
				Storage:     config.ForumStorageLocal,
				DataDir:     t.TempDir(),
				TitleMaxLen: 200,
				BodyMaxLen:  10000,
				ReplyMaxLen: 5000,
			},
		},
		Private: config.Private{
			JwtKey:    "test-secret",
			Assertion: config.Assertion{Key: "provider-secret"},
		},
	}
	deps, err := setup.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { deps.Cleanup() })
	return New(deps)
}

func TestRouter_Health(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_ForumRequiresSession(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/forum/threads/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ContentIsPublic(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/content/training", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TrainingIndexResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Modules)
}

func TestRouter_LoginFlow(t *testing.T) {
	r := testRouter(t)

	// No account yet: a password login can only be rejected.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/auth/login/password",
		strings.NewReader(`{"email":"pilot@example.com","password":"whatever"}`))
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
