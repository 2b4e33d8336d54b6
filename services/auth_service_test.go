package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/repository"
	"github.com/rafaelbressan/marmitas.top/utils"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("Carla", "  Carla@Example.COM ", "segredo123", "")
	require.NoError(t, err)
	assert.Equal(t, "carla@example.com", user.Email)
	assert.NotEqual(t, "segredo123", user.Password)

	_, err = svc.Register("Outra", "carla@example.com", "outrasenha", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	token, logged, err := svc.Login("carla@example.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := utils.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	_, _, err = svc.Login("carla@example.com", "senhaerrada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("ninguem@example.com", "segredo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeviceRegistration(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("Carla", "carla@example.com", "segredo123", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RegisterDevice(user.ID, "  ", "android"), ErrTokenRequired)

	require.NoError(t, svc.RegisterDevice(user.ID, "fcm-token-1", "android"))
	// re-registering the same handle is an upsert, not an error
	require.NoError(t, svc.RegisterDevice(user.ID, "fcm-token-1", "android"))

	require.NoError(t, svc.RemoveDevice(user.ID, "fcm-token-1"))
}

func TestSellerProfileLifecycle(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(repository.NewSellerRepository(db))
	user := seedUser(t, db, "Ana")

	sp, err := sellers.CreateProfile(user.ID, SellerProfileInput{BusinessName: "Marmitas da Ana", City: "Florianópolis"})
	require.NoError(t, err)
	assert.False(t, sp.Verified)

	_, err = sellers.CreateProfile(user.ID, SellerProfileInput{BusinessName: "Outra banca"})
	assert.ErrorIs(t, err, ErrProfileExists)

	admin := seedUser(t, db, "Root")
	admin.IsAdmin = true
	verified, err := sellers.Verify(admin, sp.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = sellers.Verify(user, sp.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
}
