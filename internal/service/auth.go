package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
	"github.com/aviationlaunchpad/launchpad/internal/identity"
	"github.com/aviationlaunchpad/launchpad/internal/logger"

	"github.com/google/uuid"
)

// AuthService reconciles third-party identity assertions against the
// account directory. Exactly one of three things can happen to an email:
// it registers a new account, it finalizes a pending one, or it signs in
// to an active one. The directory is the single source of truth for
// which of those applies.
type AuthService interface {
	CompleteRegistration(in RegistrationData) (domain.Account, error)
	SignIn(credential string) (domain.Account, error)
	SignInWithPassword(email domain.Email, password string) (domain.Account, error)
	Account(id domain.AccountId) (domain.Account, error)
}

type RegistrationData struct {
	Credential string
	Role       string
	Name       string // optional override; wins over the assertion's name
	Phone      string
	Password   string // optional; enables the password sign-in path
}

type Auth struct {
	storage  AccountStorage
	verifier identity.Verifier
}

type AccountStorage interface {
	AccountByEmail(email domain.Email) (domain.Account, error)
	AccountById(id domain.AccountId) (domain.Account, error)
	// FinalizeAccount is the directory's create-or-update-by-email
	// primitive. It activates a missing or pending entry and reports
	// existed=true, leaving the row untouched, when an active account
	// already holds the email. The check and the write are one atomic
	// operation so concurrent registrations cannot both win.
	FinalizeAccount(acc domain.Account) (domain.Account, bool, error)
}

func NewAuth(storage AccountStorage, verifier identity.Verifier) *Auth {
	return &Auth{storage: storage, verifier: verifier}
}

// CompleteRegistration turns a verified assertion plus a chosen role into
// an active account. Display name precedence: caller override, then the
// assertion's name, then the email local-part.
func (a *Auth) CompleteRegistration(in RegistrationData) (domain.Account, error) {
	assertion, err := a.verifier.Verify(in.Credential)
	if err != nil {
		return domain.Account{}, err
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return domain.Account{}, internal_errors.Validation("Unknown role: " + in.Role)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(assertion.Name)
	}
	if name == "" {
		name, _, _ = strings.Cut(assertion.Email, "@")
	}

	id := assertion.Subject
	if id == "" {
		id = uuid.NewString()
	}

	acc := domain.Account{
		Id:     id,
		Email:  assertion.Email,
		Name:   name,
		Role:   role,
		Phone:  strings.TrimSpace(in.Phone),
		Status: domain.AccountActive,
	}

	if in.Password != "" {
		passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Error("failed to hash password", "error", err)
			return domain.Account{}, err
		}
		acc.PassHash = string(passHash)
	}

	saved, existed, err := a.storage.FinalizeAccount(acc)
	if err != nil {
		return domain.Account{}, err
	}
	if existed {
		return domain.Account{}, internal_errors.AlreadyExists("Account already exists. Please sign in instead")
	}

	logger.Log.Info("registration completed", "account_id", saved.Id, "role", saved.Role)
	return saved, nil
}

// SignIn resolves an assertion to an active account. A missing entry and a
// pending one are deliberately indistinguishable to the caller: neither is
// a valid sign-in target, register first.
func (a *Auth) SignIn(credential string) (domain.Account, error) {
	assertion, err := a.verifier.Verify(credential)
	if err != nil {
		return domain.Account{}, err
	}

	acc, err := a.storage.AccountByEmail(assertion.Email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return domain.Account{}, internal_errors.NotFound("Account not found. Please register first")
		}
		return domain.Account{}, err
	}
	if !acc.Active() {
		return domain.Account{}, internal_errors.NotFound("Account not found. Please register first")
	}

	return acc, nil
}

// SignInWithPassword is the credential fallback for accounts that attached
// a password at registration.
func (a *Auth) SignInWithPassword(email domain.Email, password string) (domain.Account, error) {
	acc, err := a.storage.AccountByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// to not leak existing users
		if internal_errors.IsNotFound(err) {
			return domain.Account{}, internal_errors.Unauthorized("Invalid credentials")
		}
		return domain.Account{}, err
	}
	if !acc.Active() || acc.PassHash == "" {
		return domain.Account{}, internal_errors.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PassHash), []byte(password)); err != nil {
		return domain.Account{}, internal_errors.Unauthorized("Invalid credentials")
	}

	return acc, nil
}

func (a *Auth) Account(id domain.AccountId) (domain.Account, error) {
	return a.storage.AccountById(id)
}
