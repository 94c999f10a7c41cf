package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/testutil"
)

func newProjectService(t *testing.T) (*services.ProjectService, *gormFixture) {
	t.Helper()
	db := testutil.NewDB(t)
	fx := &gormFixture{db: db}
	svc := services.NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
	return svc, fx
}

func validProjectInput(client, manager *models.User) services.ProjectInput {
	budget := decimal.NewFromInt(5000)
	return services.ProjectInput{
		Name:             "Website relaunch",
		Description:      "Full redesign",
		ClientID:         client.ID.String(),
		ProjectManagerID: manager.ID.String(),
		Budget:           &budget,
		Status:           "active",
		StartDate:        "2026-01-01",
		EndDate:          "2026-06-30",
	}
}

func TestProjectCreateAndGet(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	created, err := svc.Create(ctx, testutil.Actor(admin), validProjectInput(client, pm))
	require.NoError(t, err)
	assert.Equal(t, "Website relaunch", created.Name)
	assert.Equal(t, client.ID, created.ClientID)
	assert.Equal(t, pm.ID, created.ProjectManagerID)
	require.NotNil(t, created.StartDate)
	assert.Equal(t, "2026-01-01", created.StartDate.Format("2006-01-02"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Client)
	assert.Equal(t, client.ID, got.Client.ID)
}

func TestProjectCreateForbiddenForFreelancer(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	freelancer := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	_, err := svc.Create(ctx, testutil.Actor(freelancer), validProjectInput(freelancer, pm))
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestProjectCreateValidation(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.Actor(admin), services.ProjectInput{})
		fields := requireValidationError(t, err)
		assert.Equal(t, "Project name is required.", fields["name"])
		assert.Equal(t, "Please select a client.", fields["client_id"])
		assert.Equal(t, "Please assign a project manager.", fields["project_manager_id"])
		assert.Equal(t, "Project status is required.", fields["status"])
	})

	t.Run("end date before start date", func(t *testing.T) {
		in := validProjectInput(client, pm)
		in.StartDate = "2026-06-30"
		in.EndDate = "2026-01-01"
		_, err := svc.Create(ctx, testutil.Actor(admin), in)
		fields := requireValidationError(t, err)
		assert.Equal(t, "End date must be after or equal to start date.", fields["end_date"])
	})

	t.Run("end date equal to start date is allowed", func(t *testing.T) {
		in := validProjectInput(client, pm)
		in.StartDate = "2026-03-15"
		in.EndDate = "2026-03-15"
		_, err := svc.Create(ctx, testutil.Actor(admin), in)
		assert.NoError(t, err)
	})

	t.Run("unknown client", func(t *testing.T) {
		in := validProjectInput(client, pm)
		in.ClientID = uuid.NewString()
		_, err := svc.Create(ctx, testutil.Actor(admin), in)
		fields := requireValidationError(t, err)
		assert.Equal(t, "Selected client is not valid.", fields["client_id"])
	})

	t.Run("negative budget", func(t *testing.T) {
		in := validProjectInput(client, pm)
		negative := decimal.NewFromInt(-1)
		in.Budget = &negative
		_, err := svc.Create(ctx, testutil.Actor(admin), in)
		fields := requireValidationError(t, err)
		assert.Equal(t, "Budget must be at least 0.", fields["budget"])
	})
}

func TestProjectListVisibility(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	otherPM := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	freelancer := testutil.SeedUser(t, fx.db, models.RoleFreelancer)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	mine := testutil.SeedProject(t, fx.db, client, pm)
	testutil.SeedProject(t, fx.db, client, otherPM)
	testutil.SeedTask(t, fx.db, mine, freelancer)

	all, meta, err := svc.List(ctx, testutil.Actor(admin), 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), meta.Total)

	managed, meta, err := svc.List(ctx, testutil.Actor(pm), 1)
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, mine.ID, managed[0].ID)
	assert.Equal(t, int64(1), meta.Total)

	assigned, _, err := svc.List(ctx, testutil.Actor(freelancer), 1)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, mine.ID, assigned[0].ID)
}

func TestProjectListEmptyPage(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)

	projects, meta, err := svc.List(ctx, testutil.Actor(pm), 1)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Equal(t, int64(0), meta.Total)
	assert.Equal(t, 1, meta.LastPage)
}

func TestProjectUpdate(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)
	project := testutil.SeedProject(t, fx.db, client, pm)

	in := validProjectInput(client, pm)
	in.Name = "Renamed"
	in.Status = "on_hold"

	updated, err := svc.Update(ctx, testutil.Actor(admin), project.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.ProjectOnHold, updated.Status)

	_, err = svc.Update(ctx, testutil.Actor(admin), uuid.New(), in)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProjectDelete(t *testing.T) {
	svc, fx := newProjectService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)
	project := testutil.SeedProject(t, fx.db, client, pm)
	task := testutil.SeedTask(t, fx.db, project, nil)

	require.NoError(t, svc.Delete(ctx, testutil.Actor(admin), project.ID))

	_, err := svc.Get(ctx, project.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Tasks follow the project per the cascade constraint.
	var count int64
	require.NoError(t, fx.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, svc.Delete(ctx, testutil.Actor(admin), project.ID), services.ErrNotFound)
}
