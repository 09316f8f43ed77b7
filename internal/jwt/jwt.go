// Package jwt issues and verifies the session tokens this service mints
// after a successful sign-in. Not to be confused with identity assertions,
// which are issued by the external provider and only verified here.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
)

type JwtService interface {
	NewToken(account domain.Account) (string, error)
	DecodeToken(jwtStr string) (domain.SessionUser, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(account domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"uid":   account.Id,
		"email": account.Email,
		"name":  account.Name,
		"role":  string(account.Role),
		"exp":   time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (domain.SessionUser, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return domain.SessionUser{}, internal_errors.Unauthorized("Invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.SessionUser{}, internal_errors.Unauthorized("Invalid token claims")
	}

	user := domain.SessionUser{}
	if user.Id, ok = claims["uid"].(string); !ok {
		return domain.SessionUser{}, internal_errors.Unauthorized("Invalid token claims")
	}
	if user.Email, ok = claims["email"].(string); !ok {
		return domain.SessionUser{}, internal_errors.Unauthorized("Invalid token claims")
	}
	if user.Name, ok = claims["name"].(string); !ok {
		return domain.SessionUser{}, internal_errors.Unauthorized("Invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return domain.SessionUser{}, internal_errors.Unauthorized("Invalid token claims")
	}
	user.Role = domain.Role(role)

	return user, nil
}
