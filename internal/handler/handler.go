// Package handler translates HTTP requests into service calls and service
// results (or errors) back into JSON responses.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aviationlaunchpad/launchpad/internal/content"
	"github.com/aviationlaunchpad/launchpad/internal/jwt"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/service"
)

type Handler struct {
	auth    service.AuthService
	forum   service.ForumService
	catalog *content.Catalog
	jwt     jwt.JwtService

	secureCookies bool
	sessionTTL    time.Duration
}

func New(auth service.AuthService, forum service.ForumService, catalog *content.Catalog, jwtService jwt.JwtService, secureCookies bool, sessionTTL time.Duration) *Handler {
	return &Handler{
		auth:          auth,
		forum:         forum,
		catalog:       catalog,
		jwt:           jwtService,
		secureCookies: secureCookies,
		sessionTTL:    sessionTTL,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
