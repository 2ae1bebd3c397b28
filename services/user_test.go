package services

import (
	"fmt"
	"testing"

	"foodhopper/config"
	"foodhopper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	config.DB = db
}

func TestCreateUserHashesPassword(t *testing.T) {
	setupUserDB(t)

	user, err := CreateUser("  Alice  ", " Alice@Example.COM ", "hunter2", false)
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEqual(t, "hunter2", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2")))
}

func TestCreateUserVendorRole(t *testing.T) {
	setupUserDB(t)

	user, err := CreateUser("Bob", "bob@example.com", "secret", true)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, user.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	setupUserDB(t)

	_, err := CreateUser("Alice", "alice@example.com", "secret", false)
	require.NoError(t, err)

	_, err = CreateUser("Imposter", "ALICE@example.com", "other", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCreateUserMissingFields(t *testing.T) {
	setupUserDB(t)

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@example.com", "x"},
		{"A", "", "x"},
		{"A", "a@example.com", ""},
	} {
		_, err := CreateUser(tc.name, tc.email, tc.password, false)
		assert.Error(t, err)
	}
}

func TestCreateGoogleUser(t *testing.T) {
	setupUserDB(t)

	user, err := CreateGoogleUser("Carol", "Carol@Example.com", "https://img/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", user.Email)
	assert.Equal(t, "https://img/avatar.png", user.Avatar)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEmpty(t, user.Password)
}
