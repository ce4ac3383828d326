package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("site-1", "", "joao@escola.com", RoleCashier)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("site-1", "João", "", RoleCashier)
	assert.ErrorIs(t, err, ErrEmptyEmail)

	u, err := NewUser("site-1", "João", "joao@escola.com", RoleCashier)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, u.Status)
}

func TestPasswordRoundTrip(t *testing.T) {
	u, err := NewUser("site-1", "João", "joao@escola.com", RoleCashier)
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("segredo123"))
	assert.True(t, u.CheckPassword("segredo123"))
	assert.False(t, u.CheckPassword("outrasenha"))
}

func TestCanIssueReceipts(t *testing.T) {
	cashier, err := NewUser("site-1", "Caixa", "caixa@escola.com", RoleCashier)
	require.NoError(t, err)
	assert.True(t, cashier.CanIssueReceipts())

	manager, err := NewUser("site-1", "Gerente", "gerente@escola.com", RoleManager)
	require.NoError(t, err)
	assert.False(t, manager.CanIssueReceipts())

	// Caixa bloqueado não emite
	cashier.Status = StatusBlocked
	assert.False(t, cashier.CanIssueReceipts())
}

func TestHasAccessToSite(t *testing.T) {
	admin, err := NewUser("", "Admin", "admin@escola.com", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.HasAccessToSite("qualquer"))

	cashier, err := NewUser("site-1", "Caixa", "caixa@escola.com", RoleCashier)
	require.NoError(t, err)
	assert.True(t, cashier.HasAccessToSite("site-1"))
	assert.False(t, cashier.HasAccessToSite("site-2"))
}

func TestRegisterLogin(t *testing.T) {
	u, err := NewUser("site-1", "João", "joao@escola.com", RoleCashier)
	require.NoError(t, err)
	assert.True(t, u.LastLoginAt.IsZero())

	u.RegisterLogin()
	assert.False(t, u.LastLoginAt.IsZero())
}
