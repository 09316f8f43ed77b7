package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
)

const accountColumns = "id, email, name, role, phone, status, pass_hash, created_at"

func scanAccount(row *sql.Row) (domain.Account, error) {
	var acc domain.Account
	var role, status string
	err := row.Scan(&acc.Id, &acc.Email, &acc.Name, &role, &acc.Phone, &status, &acc.PassHash, &acc.CreatedAt)
	if err != nil {
		return domain.Account{}, err
	}
	acc.Role = domain.Role(role)
	acc.Status = domain.AccountStatus(status)
	return acc, nil
}

func (s *Storage) AccountByEmail(email domain.Email) (domain.Account, error) {
	row := s.db.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE email = lower($1)",
		strings.TrimSpace(email),
	)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, internal_errors.NotFound("Account not found")
		}
		logger.Log.Error("account lookup failed", "error", err)
		return domain.Account{}, internal_errors.Unavailable("Account directory is unavailable")
	}
	return acc, nil
}

func (s *Storage) AccountById(id domain.AccountId) (domain.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, internal_errors.NotFound("Account not found")
		}
		logger.Log.Error("account lookup failed", "error", err)
		return domain.Account{}, internal_errors.Unavailable("Account directory is unavailable")
	}
	return acc, nil
}

// FinalizeAccount activates a missing or pending directory entry in one
// conditional upsert. When the email already belongs to an active account
// the upsert writes nothing and the existing row is returned with
// existed=true, so the caller gets an explicit answer instead of having
// to infer one from timestamps.
func (s *Storage) FinalizeAccount(acc domain.Account) (domain.Account, bool, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
        INSERT INTO accounts (id, email, name, role, phone, status, pass_hash)
        VALUES ($1, lower($2), $3, $4, $5, 'active', $6)
        ON CONFLICT (email) DO UPDATE
            SET name = EXCLUDED.name,
                role = EXCLUDED.role,
                phone = EXCLUDED.phone,
                status = 'active',
                pass_hash = EXCLUDED.pass_hash
            WHERE accounts.status = 'pending'
        RETURNING %s
    `, accountColumns),
		acc.Id, acc.Email, acc.Name, string(acc.Role), acc.Phone, acc.PassHash,
	)

	saved, err := scanAccount(row)
	if err == nil {
		return saved, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Log.Error("account upsert failed", "error", err)
		return domain.Account{}, false, internal_errors.Unavailable("Account directory is unavailable")
	}

	// No row came back: the conditional update was suppressed because an
	// active account already holds this email.
	existing, lookupErr := s.AccountByEmail(acc.Email)
	if lookupErr != nil {
		return domain.Account{}, false, lookupErr
	}
	return existing, true, nil
}
