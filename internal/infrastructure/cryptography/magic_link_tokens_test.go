//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"testing"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestIssuer(t *testing.T, now time.Time) *jwtTokenIssuer {
	t.Helper()
	issuer, err := NewJWTTokenIssuer(testSecret, "http://localhost:3000")
	require.NoError(t, err)
	i := issuer.(*jwtTokenIssuer)
	i.now = func() time.Time { return now }
	return i
}

func TestJWTTokenIssuer_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	issuer := newTestIssuer(t, now)

	token, err := issuer.Issue(auth.MagicLinkClaims{
		ID:          "jti-1",
		Email:       "ada@example.com",
		CallbackURL: "/messages",
		ExpiresAt:   now.Add(5 * time.Minute),
	})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "jti-1", claims.ID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "/messages", claims.CallbackURL)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(5*time.Minute)))
}

func TestJWTTokenIssuer_Rejects(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	issuer := newTestIssuer(t, now)
	claims := auth.MagicLinkClaims{ID: "jti-1", Email: "ada@example.com", ExpiresAt: now.Add(time.Minute)}

	token, err := issuer.Issue(claims)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTestIssuer(t, now.Add(2*time.Minute))
		_, err := later.Parse(token)
		assert.True(t, errors.Is(err, auth.ErrInvalidToken))
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewJWTTokenIssuer(testSecret, "https://elsewhere.example")
		require.NoError(t, err)
		_, err = other.Parse(token)
		assert.True(t, errors.Is(err, auth.ErrInvalidToken))
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewJWTTokenIssuer("ffffffffffffffffffffffffffffffff", "http://localhost:3000")
		require.NoError(t, err)
		_, err = other.Parse(token)
		assert.True(t, errors.Is(err, auth.ErrInvalidToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.True(t, errors.Is(err, auth.ErrInvalidToken))
	})
}

func TestJWTTokenIssuer_Config(t *testing.T) {
	_, err := NewJWTTokenIssuer("short", "http://localhost:3000")
	assert.Error(t, err)

	_, err = NewJWTTokenIssuer(testSecret, "")
	assert.Error(t, err)

	issuer := newTestIssuer(t, time.Now())
	_, err = issuer.Issue(auth.MagicLinkClaims{Email: "ada@example.com"})
	assert.Error(t, err)
}
