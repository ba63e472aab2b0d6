//go:build unit
// +build unit

package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMagicLinkEmail(t *testing.T) {
	email, err := NewMagicLinkEmail("ada@example.com", "http://localhost:3000/api/auth/magic-link/verify?token=abc", 5*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, []string{"ada@example.com"}, email.To)
	assert.Equal(t, "Sign in to Auth Starter", email.Subject)
	assert.Contains(t, email.HTML, `href="http://localhost:3000/api/auth/magic-link/verify?token=abc"`)
	assert.Contains(t, email.HTML, "5 minutes")
	assert.Contains(t, email.Text, "token=abc")
}

func TestNewContactEmail_EscapesInput(t *testing.T) {
	email, err := NewContactEmail("owner@example.com", "Mallory", "mallory@example.com", "<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Equal(t, "mallory@example.com", email.ReplyTo)
	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
	assert.Contains(t, email.Text, "<script>", "plain text is not escaped")
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanizeDuration(time.Hour))
	assert.Equal(t, "10 minutes", humanizeDuration(10*time.Minute))
	assert.Equal(t, "1 minute", humanizeDuration(time.Minute))
	assert.Equal(t, "1m30s", humanizeDuration(90*time.Second))
}
