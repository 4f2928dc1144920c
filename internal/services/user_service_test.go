package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	_, err := service.CreateUser("First", "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = service.CreateUser("Second", "dup@example.com", "password456")
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestAuthenticateUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser("Auth User", "auth@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Empty(t, created.PasswordHash)

	user, err := service.AuthenticateUser("auth@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = service.AuthenticateUser("auth@example.com", "wrong")
	assert.Error(t, err)

	_, err = service.AuthenticateUser("nobody@example.com", "whatever")
	assert.Error(t, err)
}
