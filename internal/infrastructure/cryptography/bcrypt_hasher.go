package cryptography

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// bcryptInputLimit is the number of password bytes bcrypt considers.
const bcryptInputLimit = 72

// bcryptHasher struct that implements the auth.PasswordHasher interface
type bcryptHasher struct {
	cost   int
	logger logger.Logger
}

// NewBcryptHasher creates a bcrypt password hasher. A cost of 0 selects
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int, logger logger.Logger) (auth.PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &bcryptHasher{cost: cost, logger: logger}, nil
}

// Hash hashes password. Inputs longer than bcrypt's limit are pre-hashed
// with SHA-256 so that every byte counts.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash.
func (h *bcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		h.logger.Warn("unusable password hash", "error", err)
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}

func bcryptInput(password string) []byte {
	if len(password) <= bcryptInputLimit {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
