//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/stretchr/testify/assert"
)

func TestUserModel_RoundTrip(t *testing.T) {
	now := time.Now()
	user := &users.User{
		ID:            "user-id",
		Name:          "Ada",
		Email:         "ada@example.com",
		EmailVerified: true,
		Image:         "https://example.com/ada.png",
		Role:          users.RoleManager,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var model UserModel
	model.FromDomain(user)

	assert.Equal(t, "MANAGER", model.Role)
	assert.Equal(t, user, model.ToDomain())
	assert.Equal(t, "users", model.TableName())
}

func TestSessionModel_RoundTrip(t *testing.T) {
	now := time.Now()
	session := &auth.Session{
		ID:        "session-id",
		UserID:    "user-id",
		TokenHash: auth.HashToken("token"),
		ExpiresAt: now.Add(time.Hour),
		IPAddress: "127.0.0.1",
		UserAgent: "test",
		CreatedAt: now,
		UpdatedAt: now,
	}

	var model SessionModel
	model.FromDomain(session)

	assert.Equal(t, session, model.ToDomain())
	assert.Equal(t, "sessions", model.TableName())
}

func TestAccountModel_RoundTrip(t *testing.T) {
	now := time.Now()
	expires := now.Add(time.Hour)
	account := &auth.Account{
		ID:                   "account-id",
		UserID:               "user-id",
		ProviderID:           auth.ProviderGitHub,
		AccountID:            "12345",
		AccessToken:          "gho_token",
		Scope:                "read:user user:email",
		AccessTokenExpiresAt: &expires,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	var model AccountModel
	model.FromDomain(account)

	assert.Equal(t, account, model.ToDomain())
	assert.Equal(t, "accounts", model.TableName())
}

func TestVerificationAndMessageModels(t *testing.T) {
	now := time.Now()
	verification := &auth.Verification{
		ID:         "verification-id",
		Identifier: auth.MagicLinkIdentifierPrefix + "jti",
		Value:      "ada@example.com",
		ExpiresAt:  now.Add(5 * time.Minute),
		CreatedAt:  now,
	}
	var vm VerificationModel
	vm.FromDomain(verification)
	assert.Equal(t, verification, vm.ToDomain())

	message := &messages.Message{ID: "message-id", Name: "Ada", Email: "ada@example.com", Body: "Hello", CreatedAt: now}
	var mm MessageModel
	mm.FromDomain(message)
	assert.Equal(t, message, mm.ToDomain())
	assert.Equal(t, "messages", mm.TableName())
}

func TestAll(t *testing.T) {
	assert.Len(t, All(), 5)
}
