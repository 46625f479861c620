// FilePath: internal/auth/tokens_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42, "op@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "op@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID, "every token gets a unique id for revocation")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(1, "op@example.com", "user")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.Error(t, err)
	assert.False(t, IsExpired(err))
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(1, "op@example.com", "user")
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Parse("not.a.token")
	require.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	a, err := m.Issue(1, "a@example.com", "user")
	require.NoError(t, err)
	b, err := m.Issue(1, "a@example.com", "user")
	require.NoError(t, err)

	claimsA, err := m.Parse(a)
	require.NoError(t, err)
	claimsB, err := m.Parse(b)
	require.NoError(t, err)
	assert.NotEqual(t, claimsA.ID, claimsB.ID)
}
