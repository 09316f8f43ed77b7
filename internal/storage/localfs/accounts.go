package localfs

import (
	"strings"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

func toDomain(a localAccount) domain.Account {
	acc := a.Account
	acc.Status = a.Status
	acc.PassHash = a.PassHash
	return acc
}

func (s *Storage) AccountByEmail(email domain.Email) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for _, a := range s.accounts.Accounts {
		if strings.ToLower(a.Email) == email {
			return toDomain(a), nil
		}
	}
	return domain.Account{}, internal_errors.NotFound("Account not found")
}

func (s *Storage) AccountById(id domain.AccountId) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts.Accounts {
		if a.Id == id {
			return toDomain(a), nil
		}
	}
	return domain.Account{}, internal_errors.NotFound("Account not found")
}

// FinalizeAccount activates a missing or pending directory entry and
// reports existed=true, without touching the row, when an active account
// already holds the email. The whole check-and-write runs under one lock,
// so concurrent registrations for the same email cannot both succeed.
func (s *Storage) FinalizeAccount(acc domain.Account) (domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc.Email = strings.ToLower(acc.Email)

	next := s.accounts
	next.Accounts = append([]localAccount{}, s.accounts.Accounts...)

	for i, existing := range next.Accounts {
		if strings.ToLower(existing.Email) != acc.Email {
			continue
		}
		if existing.Status == domain.AccountActive {
			return toDomain(existing), true, nil
		}
		// Pending entry: finalize it, keeping its original id.
		acc.Id = existing.Id
		acc.CreatedAt = existing.CreatedAt
		next.Accounts[i] = localAccount{Account: acc, Status: domain.AccountActive, PassHash: acc.PassHash}
		if err := s.persist(accountsFile, &next); err != nil {
			return domain.Account{}, false, err
		}
		s.accounts = next
		return toDomain(next.Accounts[i]), false, nil
	}

	acc.Status = domain.AccountActive
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = nowUTC()
	}
	next.Accounts = append(next.Accounts, localAccount{Account: acc, Status: domain.AccountActive, PassHash: acc.PassHash})
	if err := s.persist(accountsFile, &next); err != nil {
		return domain.Account{}, false, err
	}
	s.accounts = next
	return acc, false, nil
}
