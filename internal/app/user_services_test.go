//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_SetRole(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	svc, err := NewUserService(repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	user := testUser()
	repo.On("GetByEmail", ctx, user.Email).Return(user, nil)
	repo.On("UpdateRole", ctx, user.ID, users.RoleAdmin).Return(nil)

	got, err := svc.SetRole(ctx, user.Email, users.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, got.Role)

	_, err = svc.SetRole(ctx, user.Email, "ROOT")
	assert.Error(t, err)
}

func TestUserService_SetRole_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	svc, err := NewUserService(repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, users.ErrNotFound)

	_, err = svc.SetRole(ctx, "ghost@example.com", users.RoleManager)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestUserService_List_InvalidQuery(t *testing.T) {
	svc, err := NewUserService(&MockUserRepository{}, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), &users.UserQuery{Role: "ROOT"})
	assert.Error(t, err)
}
