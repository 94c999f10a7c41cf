package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"freelanceflow/internal/auth"
	"freelanceflow/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	user := &models.User{Role: models.RoleAdmin}
	user.ID = uuid.New()

	token, jti, err := issuer.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, jti, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	user := &models.User{Role: models.RoleFreelancer}
	user.ID = uuid.New()

	token, _, err := issuer.Issue(user)
	require.NoError(t, err)

	other := auth.NewTokenIssuer("different", time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", -time.Minute)
	user := &models.User{Role: models.RoleFreelancer}
	user.ID = uuid.New()

	token, _, err := issuer.Issue(user)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-enough")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-enough", hash)

	assert.NoError(t, auth.CheckPassword("s3cret-enough", hash))
	assert.Error(t, auth.CheckPassword("wrong", hash))
}
