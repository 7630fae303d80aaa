package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
)

func TestNewMessageValidRoles(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSystem, domain.RoleUser, domain.RoleAssistant} {
		msg, err := domain.NewMessage(role, "hello")
		require.NoError(t, err, "role %q", role)
		assert.Equal(t, role, msg.Role)
		assert.Equal(t, "hello", msg.Content)
	}
}

func TestNewMessageEmptyContentAllowed(t *testing.T) {
	msg, err := domain.NewMessage(domain.RoleUser, "")
	require.NoError(t, err)
	assert.Empty(t, msg.Content)
}

func TestNewMessageInvalidRole(t *testing.T) {
	for _, role := range []domain.Role{"", "tool", "Assistant", "USER"} {
		_, err := domain.NewMessage(role, "hello")
		assert.ErrorIs(t, err, domain.ErrInvalidRole, "role %q", role)
	}
}

func TestInitialHistory(t *testing.T) {
	assert.Empty(t, domain.InitialHistory(""))

	h := domain.InitialHistory("You are a checker")
	require.Len(t, h, 1)
	assert.Equal(t, domain.RoleSystem, h[0].Role)
	assert.Equal(t, "You are a checker", h[0].Content)
}
