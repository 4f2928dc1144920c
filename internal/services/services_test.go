package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcastano/jobtrackr-be/internal/database"
	"github.com/dcastano/jobtrackr-be/internal/models"
)

// setupTestDB creates an in-memory SQLite database with migrations applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// newTestUser inserts a user row directly and returns it.
func newTestUser(t *testing.T, db *sql.DB, email string) models.User {
	t.Helper()

	users := NewUserService(db)
	user, err := users.CreateUser("Test User", email, "password123")
	require.NoError(t, err)
	return user
}

// testEvents builds an event service with no live delivery.
func testEvents(db *sql.DB) EventServiceProvider {
	return NewEventService(db, nil)
}
