package domain

import (
	"strings"
	"time"
)

type (
	AccountId = string
	Email     = string
)

// Role doubles as the membership tier shown across the site.
type Role string

const (
	RoleMember Role = "member"
	RoleMentee Role = "mentee"
	RoleMentor Role = "mentor"
)

// ParseRole maps a caller-supplied role string to the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMember:
		return RoleMember, true
	case RoleMentee:
		return RoleMentee, true
	case RoleMentor:
		return RoleMentor, true
	}
	return "", false
}

// AccountStatus is explicit rather than inferred from field presence.
// A pending entry exists when an identity was proven but the profile
// was never completed; it is not a valid sign-in target.
type AccountStatus string

const (
	AccountPending AccountStatus = "pending"
	AccountActive  AccountStatus = "active"
)

type Account struct {
	Id        AccountId     `json:"id"`
	Email     Email         `json:"email"`
	Name      string        `json:"name"`
	Role      Role          `json:"role,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Status    AccountStatus `json:"-"`
	PassHash  string        `json:"-"` // empty when no password credential is attached
	CreatedAt time.Time     `json:"created_at"`
}

// Active reports whether the account is a valid sign-in target.
func (a Account) Active() bool {
	return a.Status == AccountActive && a.Role != ""
}
