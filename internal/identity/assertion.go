// Package identity verifies third-party identity assertions: short-lived
// signed tokens asserting a subject, email and display name. The asserted
// email is the join key into the account directory.
package identity

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aviationlaunchpad/launchpad/internal/config"
	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

type Assertion struct {
	Subject   string
	Email     domain.Email
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verifier turns a raw credential into a trusted Assertion or rejects it.
type Verifier interface {
	Verify(credential string) (Assertion, error)
}

// JwtVerifier validates HS256 credentials issued by the configured provider.
type JwtVerifier struct {
	key      []byte
	issuer   string
	audience string
}

func NewVerifier(cfg config.Assertion) *JwtVerifier {
	return &JwtVerifier{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

type assertionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (v *JwtVerifier) Verify(credential string) (Assertion, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims assertionClaims
	token, err := jwt.ParseWithClaims(credential, &claims, func(token *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...)
	if err != nil || !token.Valid {
		return Assertion{}, internal_errors.InvalidAssertion("Invalid or expired credential. Please sign in again")
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return Assertion{}, internal_errors.InvalidAssertion("Credential is missing an email claim")
	}

	a := Assertion{
		Subject: claims.Subject,
		Email:   email,
		Name:    claims.Name,
	}
	if claims.IssuedAt != nil {
		a.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		a.ExpiresAt = claims.ExpiresAt.Time
	}
	return a, nil
}
