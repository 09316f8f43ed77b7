package handler

import (
	"net/http"
	"time"

	"github.com/aviationlaunchpad/launchpad/internal/api"
	"github.com/aviationlaunchpad/launchpad/internal/domain"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/middleware"
	"github.com/aviationlaunchpad/launchpad/internal/service"
	"github.com/aviationlaunchpad/launchpad/internal/utils"
)

const accessTokenCookie = "accessToken"

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) startSession(w http.ResponseWriter, statusCode int, account domain.Account) {
	token, err := h.jwt.NewToken(account)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.setSessionCookie(w, token)
	h.writeJSON(w, statusCode, api.SessionResponse{Account: account, AccessToken: token})
}

// Register completes registration from a provider credential plus a chosen
// role. The account comes back active and signed in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	account, err := h.auth.CompleteRegistration(service.RegistrationData{
		Credential: req.Credential,
		Role:       req.Role,
		Name:       req.Name,
		Phone:      req.Phone,
		Password:   req.Password,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.startSession(w, http.StatusCreated, account)
}

// Login exchanges a provider credential for a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	account, err := h.auth.SignIn(req.Credential)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.startSession(w, http.StatusOK, account)
}

// LoginPassword is the email/password fallback for accounts that attached
// a password at registration.
func (h *Handler) LoginPassword(w http.ResponseWriter, r *http.Request) {
	var req api.PasswordLoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	account, err := h.auth.SignInWithPassword(req.Email, req.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.startSession(w, http.StatusOK, account)
}

// Logout clears the session cookie. Tokens held by non-cookie clients
// simply expire.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the account behind the current session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		logger.Log.Error("Me called without authenticated user in context")
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	account, err := h.auth.Account(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.MeResponse{Account: account})
}
