package api

import "github.com/aviationlaunchpad/launchpad/internal/domain"

// Request DTOs

type RegisterRequest struct {
	Credential string `json:"credential" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type LoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type PasswordLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type SessionResponse struct {
	Account domain.Account `json:"account"`
	// Token for non-cookie clients (mobile, API clients)
	AccessToken string `json:"access_token,omitempty"`
}

type MeResponse struct {
	Account domain.Account `json:"account"`
}
