package domain

// SessionUser is the slice of an account carried inside a session token.
// Authorization decisions use Id; Name is display-only and may go stale.
type SessionUser struct {
	Id    AccountId `json:"id"`
	Email Email     `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}
