package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freelanceflow/internal/auth"
	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/testutil"
)

func newAuthService(t *testing.T) (*services.AuthService, *auth.TokenIssuer, *gormFixture) {
	t.Helper()
	db := testutil.NewDB(t)
	fx := &gormFixture{db: db}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := services.NewAuthService(
		repository.NewUserRepository(db),
		tokens,
		auth.NewRevocationStore("", ""),
		zap.NewNop(),
	)
	return svc, tokens, fx
}

func seedCredentialedUser(t *testing.T, fx *gormFixture, password string, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	require.NoError(t, fx.db.Model(user).Updates(map[string]interface{}{
		"password":  hash,
		"is_active": active,
	}).Error)
	user.Password = hash
	user.IsActive = active
	return user
}

func TestLogin(t *testing.T) {
	svc, tokens, fx := newAuthService(t)
	ctx := context.Background()

	user := seedCredentialedUser(t, fx, "hunter2hunter2", true)

	token, got, err := svc.Login(ctx, user.Email, "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleProjectManager, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, fx := newAuthService(t)
	ctx := context.Background()

	user := seedCredentialedUser(t, fx, "hunter2hunter2", true)

	_, _, err := svc.Login(ctx, user.Email, "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _, fx := newAuthService(t)
	ctx := context.Background()

	user := seedCredentialedUser(t, fx, "hunter2hunter2", false)

	_, _, err := svc.Login(ctx, user.Email, "hunter2hunter2")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogoutWithoutRevocationStore(t *testing.T) {
	svc, tokens, fx := newAuthService(t)
	ctx := context.Background()

	user := seedCredentialedUser(t, fx, "hunter2hunter2", true)
	token, _, err := svc.Login(ctx, user.Email, "hunter2hunter2")
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)

	// Without redis configured logout is a no-op rather than an error.
	assert.NoError(t, svc.Logout(ctx, claims))
}
