package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(subject, name string, expires time.Time) Claims {
	return Claims{
		Email: subject + "@example.com",
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func TestParseRoundTrip(t *testing.T) {
	p := NewParser("secret")

	raw, err := p.Sign(claimsFor("uid-1", "Sam", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	claims, err := p.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "Sam", claims.Name)
	assert.Equal(t, "uid-1@example.com", claims.Email)
}

func TestParseRejectsBadTokens(t *testing.T) {
	p := NewParser("secret")

	expired, err := p.Sign(claimsFor("uid-1", "", time.Now().Add(-time.Hour)))
	require.NoError(t, err)
	_, err = p.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewParser("other").Sign(claimsFor("uid-1", "", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	_, err = p.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := p.Sign(claimsFor("", "", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	_, err = p.Parse(anonymous)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = p.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
