package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw, err := tokens.Issue("user-1", RoleAdmin, "admin@example.com")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Issue("user-1", RoleTenant, "t@example.com")
	require.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	raw, err := NewTokens("secret", -time.Minute).Issue("user-1", RoleTenant, "t@example.com")
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}
