//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	UserRepo         users.UserRepository
	SessionRepo      auth.SessionRepository
	AccountRepo      auth.AccountRepository
	VerificationRepo auth.VerificationRepository
	MessageRepo      messages.MessageRepository
}

var (
	pgOnce      sync.Once
	pgContainer *postgres.PostgresContainer
	pgDSN       string
	pgErr       error
)

// postgresDSN starts one PostgreSQL container per test binary and returns
// its admin connection string.
func postgresDSN(t *testing.T) string {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		pgContainer, pgErr = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("postgres"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if pgErr != nil {
			return
		}
		pgDSN, pgErr = pgContainer.ConnectionString(ctx, "sslmode=disable")
	})

	if pgErr != nil {
		t.Skipf("postgres container unavailable: %v", pgErr)
	}
	return pgDSN
}

// terminatePostgres stops the shared container if one was started.
func terminatePostgres() {
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		adminDSN := postgresDSN(t)
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  adminDSN,
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserRepository(db, logger)
	require.NoError(t, err)
	sessionRepo, err := NewGormSessionRepository(db, logger)
	require.NoError(t, err)
	accountRepo, err := NewGormAccountRepository(db, logger)
	require.NoError(t, err)
	verificationRepo, err := NewGormVerificationRepository(db, logger)
	require.NoError(t, err)
	messageRepo, err := NewGormMessageRepository(db, logger)
	require.NoError(t, err)

	return &TestContext{
		DB:               db,
		UserRepo:         userRepo,
		SessionRepo:      sessionRepo,
		AccountRepo:      accountRepo,
		VerificationRepo: verificationRepo,
		MessageRepo:      messageRepo,
	}
}

// CreateTestUser builds a valid user with the given email and role
func CreateTestUser(t *testing.T, email string, role users.Role) *users.User {
	t.Helper()

	now := time.Now()
	return &users.User{
		ID:        uuid.NewString(),
		Name:      "Test User",
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestSession builds a session for userID expiring after ttl and
// returns it with its raw token
func CreateTestSession(t *testing.T, userID string, ttl time.Duration) (*auth.Session, string) {
	t.Helper()

	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	now := time.Now()
	return &auth.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: now.Add(ttl),
		IPAddress: "127.0.0.1",
		UserAgent: "integration-test",
		CreatedAt: now,
		UpdatedAt: now,
	}, token
}

// CreateTestMessage builds a valid contact message
func CreateTestMessage(t *testing.T, body string, createdAt time.Time) *messages.Message {
	t.Helper()

	return &messages.Message{
		ID:        uuid.NewString(),
		Name:      "Ada",
		Email:     "ada@example.com",
		Body:      body,
		CreatedAt: createdAt,
	}
}
