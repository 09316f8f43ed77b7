package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	"github.com/aviationlaunchpad/launchpad/internal/jwt"
)

// Key to store the session user in the request context
type key int

const userKey key = 0

type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth rejects requests without a valid session token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				http.Error(w, "Please sign in", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) extractUser(r *http.Request) (*domain.SessionUser, error) {
	// Cookie first (browser clients), then Authorization header
	// (API/mobile clients).
	var tokenString string
	if accessCookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, http.ErrNoCookie
	}

	user, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserFromContext returns the authenticated session user, or nil when
// the request never passed NeedAuth.
func GetUserFromContext(r *http.Request) *domain.SessionUser {
	user, _ := r.Context().Value(userKey).(*domain.SessionUser)
	return user
}

// WithUser is a test helper for handler tests.
func WithUser(r *http.Request, user *domain.SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
