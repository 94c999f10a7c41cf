package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freelanceflow/internal/auth"
	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/testutil"
)

func newUserService(t *testing.T) (*services.UserService, *gormFixture) {
	t.Helper()
	db := testutil.NewDB(t)
	fx := &gormFixture{db: db}
	svc := services.NewUserService(repository.NewUserRepository(db), zap.NewNop())
	return svc, fx
}

func validUserInput(email string) services.UserInput {
	return services.UserInput{
		Name:     "Jordan Doe",
		Email:    email,
		Password: "correct horse battery",
		Role:     "freelancer",
	}
}

func TestUserCreate(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)

	created, err := svc.Create(ctx, testutil.Actor(admin), validUserInput("jordan@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", created.Email)
	assert.True(t, created.IsActive)

	// The stored password is a hash, never the plaintext.
	assert.NotEqual(t, "correct horse battery", created.Password)
	assert.NoError(t, auth.CheckPassword("correct horse battery", created.Password))
}

func TestUserManagementAdminOnly(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	freelancer := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	for _, actor := range []*models.User{pm, freelancer} {
		_, _, err := svc.List(ctx, testutil.Actor(actor), 1)
		assert.ErrorIs(t, err, services.ErrForbidden)

		_, err = svc.Get(ctx, testutil.Actor(actor), pm.ID)
		assert.ErrorIs(t, err, services.ErrForbidden)

		_, err = svc.Create(ctx, testutil.Actor(actor), validUserInput("x@example.com"))
		assert.ErrorIs(t, err, services.ErrForbidden)

		assert.ErrorIs(t, svc.Delete(ctx, testutil.Actor(actor), freelancer.ID), services.ErrForbidden)
	}
}

func TestUserCreateValidation(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.Actor(admin), services.UserInput{})
		fields := requireValidationError(t, err)
		assert.Equal(t, "Name is required.", fields["name"])
		assert.Equal(t, "Email is required.", fields["email"])
		assert.Equal(t, "Password is required.", fields["password"])
		assert.Equal(t, "Role is required.", fields["role"])
	})

	t.Run("short password", func(t *testing.T) {
		in := validUserInput("short@example.com")
		in.Password = "seven77"
		_, err := svc.Create(ctx, testutil.Actor(admin), in)
		fields := requireValidationError(t, err)
		assert.Equal(t, "Password must be at least 8 characters.", fields["password"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.Actor(admin), validUserInput("dup@example.com"))
		require.NoError(t, err)
		_, err = svc.Create(ctx, testutil.Actor(admin), validUserInput("dup@example.com"))
		fields := requireValidationError(t, err)
		assert.Equal(t, "Email is already in use.", fields["email"])
	})

	t.Run("invalid role", func(t *testing.T) {
		in := validUserInput("role@example.com")
		in.Role = "superadmin"
		_, err := svc.Create(ctx, testutil.Actor(admin), in)
		fields := requireValidationError(t, err)
		assert.Equal(t, "The selected role is invalid.", fields["role"])
	})
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	created, err := svc.Create(ctx, testutil.Actor(admin), validUserInput("keep@example.com"))
	require.NoError(t, err)
	originalHash := created.Password

	in := validUserInput("keep@example.com")
	in.Password = ""
	in.Role = "project_manager"
	updated, err := svc.Update(ctx, testutil.Actor(admin), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.Password)
	assert.Equal(t, models.RoleProjectManager, updated.Role)
}

func TestUserDeactivation(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	created, err := svc.Create(ctx, testutil.Actor(admin), validUserInput("inactive@example.com"))
	require.NoError(t, err)

	inactive := false
	in := validUserInput("inactive@example.com")
	in.Password = ""
	in.IsActive = &inactive
	updated, err := svc.Update(ctx, testutil.Actor(admin), created.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUserSelfDeleteRejected(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)

	err := svc.Delete(ctx, testutil.Actor(admin), admin.ID)
	fields := requireValidationError(t, err)
	assert.Equal(t, "You cannot delete your own account.", fields["id"])
}

func TestUserDeleteCascadesProjects(t *testing.T) {
	svc, fx := newUserService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)
	project := testutil.SeedProject(t, fx.db, client, pm)

	require.NoError(t, svc.Delete(ctx, testutil.Actor(admin), client.ID))

	var count int64
	require.NoError(t, fx.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
