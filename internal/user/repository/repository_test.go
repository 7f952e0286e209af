package repository

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"testing"

	models "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ocean"),
		postgres.WithUsername("ocean"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connections string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*models.User)(nil),
		(*models.Account)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	// uniqueness only among live rows, same as the production migration
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_live ON accounts (username) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_live ON users (email) WHERE deleted_at IS NULL`,
	}
	for _, idx := range indexes {
		if _, err := testDB.ExecContext(ctx, idx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create index: %v", err)
		}
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func truncateUsers(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE accounts, users RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
}

func registerFixture(t *testing.T, repo *UserRepository, username, email string) (*models.User, *models.Account) {
	t.Helper()
	u := &models.User{Name: "Test User", Email: email}
	account := &models.Account{Username: username, CredentialHash: "hash"}
	require.NoError(t, repo.RegisterAccount(context.Background(), u, account))
	return u, account
}

func Test_RegisterAccount(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	u, account := registerFixture(t, repo, "alice_01", "alice@example.com")

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, u.ID, account.UserID)
	assert.False(t, u.CreatedAt.IsZero())
}

func Test_RegisterAccount_DuplicateUsernameRollsBack(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	registerFixture(t, repo, "alice_01", "alice@example.com")

	u2 := &models.User{Name: "Imposter", Email: "imposter@example.com"}
	account2 := &models.Account{Username: "alice_01", CredentialHash: "hash"}
	err := repo.RegisterAccount(context.Background(), u2, account2)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

	// the user row inserted before the account conflict must be gone
	count, err := testDB.NewSelect().Model((*models.User)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func Test_RegisterAccount_DuplicateEmail(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	registerFixture(t, repo, "alice_01", "alice@example.com")

	u2 := &models.User{Name: "Other", Email: "alice@example.com"}
	account2 := &models.Account{Username: "other_01", CredentialHash: "hash"}
	err := repo.RegisterAccount(context.Background(), u2, account2)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func Test_GetUserByID(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	u, _ := registerFixture(t, repo, "alice_01", "alice@example.com")

	fetched, err := repo.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Name, fetched.Name)
	assert.Equal(t, u.Email, fetched.Email)

	_, err = repo.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func Test_GetUserByEmail(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	u, _ := registerFixture(t, repo, "alice_01", "alice@example.com")

	fetched, err := repo.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)

	_, err = repo.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func Test_GetAccountByUsername(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	u, _ := registerFixture(t, repo, "alice_01", "alice@example.com")

	fetched, err := repo.GetAccountByUsername(context.Background(), "alice_01")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.UserID)
	assert.Equal(t, "hash", fetched.CredentialHash)
	require.NotNil(t, fetched.User)
	assert.Equal(t, u.Email, fetched.User.Email)

	_, err = repo.GetAccountByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func Test_FindUsersByIDs(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, logger.Logger{})

	u1, _ := registerFixture(t, repo, "alice_01", "alice@example.com")
	u2, _ := registerFixture(t, repo, "bob_01", "bob@example.com")
	registerFixture(t, repo, "carol_01", "carol@example.com")

	users, err := repo.FindUsersByIDs(context.Background(), []uuid.UUID{u1.ID, u2.ID})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.FindUsersByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}
