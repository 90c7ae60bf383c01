package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/database"
	"github.com/myrecipebox/recipebox-be/internal/models"
)

// newTestDB opens a migrated in-memory database. The pool is pinned to
// one connection so every query sees the same in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestHasher() *auth.Hasher {
	return auth.NewHasherWithCost(bcrypt.MinCost)
}

// registerUser creates an account with a policy-compliant password.
func registerUser(t *testing.T, users *UserService, name, email string) models.User {
	t.Helper()

	user, err := users.Register(name, email, "Abcdef1!")
	require.NoError(t, err)
	return user
}
