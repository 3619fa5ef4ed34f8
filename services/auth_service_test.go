package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lumen-cms/config"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return NewAuthService(repositories.NewUserRepository(db), repositories.NewPreferenceRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	registered, err := svc.Register(models.RegisterRequest{
		Username: "alex",
		Email:    "alex@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleWriter, registered.User.Role)
	// the stored password is hashed
	assert.NotEqual(t, "secret123", registered.User.Password)

	logged, err := svc.Login(models.LoginRequest{Email: "alex@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	_, err = svc.Login(models.LoginRequest{Email: "alex@example.com", Password: "wrong"})
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(models.RegisterRequest{Username: "a", Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(models.RegisterRequest{Username: "b", Email: "dup@example.com", Password: "secret123"})
	assert.EqualError(t, err, "user already exists")
}

func TestPreferenceDefaultsAndUpsert(t *testing.T) {
	svc := newAuthService(t)

	registered, err := svc.Register(models.RegisterRequest{
		Username: "pref",
		Email:    "pref@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	// no stored row yet: the default theme comes back
	pref, err := svc.GetPreference(userID)
	require.NoError(t, err)
	assert.Equal(t, "light", pref.Theme)

	pref, err = svc.SetTheme(userID, "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", pref.Theme)

	// setting again updates the same row
	pref, err = svc.SetTheme(userID, "light")
	require.NoError(t, err)
	assert.Equal(t, "light", pref.Theme)

	pref, err = svc.GetPreference(userID)
	require.NoError(t, err)
	assert.Equal(t, "light", pref.Theme)
}
