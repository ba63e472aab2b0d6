//go:build integration
// +build integration

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/infrastructure/persistence/models"
	"github.com/dwestland/auth-starter/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, "  Ada@Example.com ", users.RoleUser)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	var model models.UserModel
	require.NoError(t, ctx.DB.First(&model, "id = ?", user.ID).Error)
	assert.Equal(t, "ada@example.com", model.Email, "emails are stored normalized")
	assert.Equal(t, "USER", model.Role)
}

func TestUserSqliteRepository_Create_DuplicateEmail(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, ctx.UserRepo.Create(context.Background(), CreateTestUser(t, "ada@example.com", users.RoleUser)))

	err := ctx.UserRepo.Create(context.Background(), CreateTestUser(t, "ADA@example.com", users.RoleUser))
	assert.True(t, errors.Is(err, users.ErrEmailTaken), "got %v", err)
}

func TestUserSqliteRepository_Create_Invalid(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.UserRepo.Create(context.Background(), &users.User{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestUserSqliteRepository_GetByEmailAndID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, "ada@example.com", users.RoleAdmin)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	byEmail, err := ctx.UserRepo.GetByEmail(context.Background(), "ADA@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, users.RoleAdmin, byEmail.Role)

	byID, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	_, err = ctx.UserRepo.GetByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, users.ErrNotFound))

	_, err = ctx.UserRepo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, users.ErrNotFound))
}

func TestUserSqliteRepository_ListByRole(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	for _, u := range []*users.User{
		CreateTestUser(t, "a@example.com", users.RoleUser),
		CreateTestUser(t, "b@example.com", users.RoleAdmin),
		CreateTestUser(t, "c@example.com", users.RoleUser),
	} {
		require.NoError(t, ctx.UserRepo.Create(context.Background(), u))
	}

	all, err := ctx.UserRepo.List(context.Background(), users.NewUserQuery())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admins, err := ctx.UserRepo.List(context.Background(), &users.UserQuery{Role: users.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "b@example.com", admins[0].Email)

	paged, err := ctx.UserRepo.List(context.Background(), &users.UserQuery{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestUserSqliteRepository_UpdateAndUpdateRole(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, "ada@example.com", users.RoleUser)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	user.Name = "Ada Lovelace"
	user.EmailVerified = true
	require.NoError(t, ctx.UserRepo.Update(context.Background(), user))

	require.NoError(t, ctx.UserRepo.UpdateRole(context.Background(), user.ID, users.RoleManager))

	fetched, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", fetched.Name)
	assert.True(t, fetched.EmailVerified)
	assert.Equal(t, users.RoleManager, fetched.Role)

	err = ctx.UserRepo.UpdateRole(context.Background(), user.ID, users.Role("ROOT"))
	assert.True(t, errors.Is(err, users.ErrInvalidRole))

	err = ctx.UserRepo.UpdateRole(context.Background(), "missing", users.RoleAdmin)
	assert.True(t, errors.Is(err, users.ErrNotFound))
}
