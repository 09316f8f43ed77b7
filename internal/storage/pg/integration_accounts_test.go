package pg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

func uniqueAccount() domain.Account {
	id := uuid.NewString()
	return domain.Account{
		Id:    id,
		Email: id + "@example.com",
		Name:  "Alex Pilot",
		Role:  domain.RoleMentee,
		Phone: "555-0101",
	}
}

func TestIntegrationFinalizeAccount_NewEntry(t *testing.T) {
	acc := uniqueAccount()

	saved, existed, err := storage.FinalizeAccount(acc)

	require.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, acc.Id, saved.Id)
	assert.Equal(t, domain.AccountActive, saved.Status)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestIntegrationFinalizeAccount_ActiveEntryUntouched(t *testing.T) {
	acc := uniqueAccount()
	first, _, err := storage.FinalizeAccount(acc)
	require.NoError(t, err)

	again := acc
	again.Id = uuid.NewString()
	again.Name = "Impostor"

	saved, existed, err := storage.FinalizeAccount(again)

	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, first.Id, saved.Id)
	assert.Equal(t, "Alex Pilot", saved.Name)
}

func TestIntegrationFinalizeAccount_PendingEntryActivated(t *testing.T) {
	acc := uniqueAccount()
	_, err := storage.db.Exec(
		"INSERT INTO accounts (id, email, name, role, phone, status) VALUES ($1, $2, $3, '', '', 'pending')",
		acc.Id, acc.Email, "Placeholder")
	require.NoError(t, err)

	finalized := acc
	finalized.Id = uuid.NewString() // a finalize attempt arrives with a fresh id

	saved, existed, err := storage.FinalizeAccount(finalized)

	require.NoError(t, err)
	assert.False(t, existed, "finalizing a pending entry is a registration, not a conflict")
	assert.Equal(t, acc.Id, saved.Id, "pending entry keeps its original id")
	assert.Equal(t, domain.AccountActive, saved.Status)
	assert.Equal(t, domain.RoleMentee, saved.Role)
}

func TestIntegrationAccountLookups(t *testing.T) {
	acc := uniqueAccount()
	_, _, err := storage.FinalizeAccount(acc)
	require.NoError(t, err)

	byEmail, err := storage.AccountByEmail(acc.Email)
	require.NoError(t, err)
	assert.Equal(t, acc.Id, byEmail.Id)

	// Lookup is case-insensitive on the join key.
	upper, err := storage.AccountByEmail(acc.Id + "@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, acc.Id, upper.Id)

	byId, err := storage.AccountById(acc.Id)
	require.NoError(t, err)
	assert.Equal(t, acc.Email, byId.Email)

	_, err = storage.AccountByEmail("ghost@example.com")
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))
}
