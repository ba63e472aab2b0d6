package app

import (
	"context"
	"fmt"

	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
)

// userService implements the users.UserService interface
type userService struct {
	repo   users.UserRepository
	logger logger.Logger
}

// NewUserService creates a new userService instance
func NewUserService(repo users.UserRepository, logger logger.Logger) (users.UserService, error) {
	return &userService{repo: repo, logger: logger}, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, userID string) (*users.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// List lists users matching query
func (s *userService) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	if query == nil {
		query = users.NewUserQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, query)
}

// SetRole assigns role to the user registered with email.
func (s *userService) SetRole(ctx context.Context, email string, role users.Role) (*users.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", users.ErrInvalidRole, role)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	if err := s.repo.UpdateRole(ctx, user.ID, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	s.logger.Info("user role changed", "user_id", user.ID, "from", user.Role, "to", role)
	user.Role = role
	return user, nil
}
