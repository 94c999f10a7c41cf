package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/testutil"
)

func newDashboardService(t *testing.T) (*services.DashboardService, *gormFixture) {
	t.Helper()
	db := testutil.NewDB(t)
	fx := &gormFixture{db: db}
	svc := services.NewDashboardService(
		repository.NewProjectRepository(db),
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewProposalRepository(db),
		repository.NewInvoiceRepository(db),
	)
	return svc, fx
}

func seedDashboardWorld(t *testing.T, db *gorm.DB) (admin, pm, freelancer *models.User) {
	t.Helper()
	admin = testutil.SeedUser(t, db, models.RoleAdmin)
	pm = testutil.SeedUser(t, db, models.RoleProjectManager)
	otherPM := testutil.SeedUser(t, db, models.RoleProjectManager)
	freelancer = testutil.SeedUser(t, db, models.RoleFreelancer)
	client := testutil.SeedUser(t, db, models.RoleFreelancer)

	managed := testutil.SeedProject(t, db, client, pm)
	foreign := testutil.SeedProject(t, db, client, otherPM)

	assigned := testutil.SeedTask(t, db, managed, freelancer)
	require.NoError(t, db.Model(assigned).Update("status", models.TaskInProgress).Error)
	testutil.SeedTask(t, db, managed, nil)
	testutil.SeedTask(t, db, foreign, nil)
	return admin, pm, freelancer
}

func TestDashboardAdminStats(t *testing.T) {
	svc, fx := newDashboardService(t)
	ctx := context.Background()

	admin, _, _ := seedDashboardWorld(t, fx.db)

	overview, err := svc.Overview(ctx, testutil.Actor(admin))
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, overview.UserRole)
	assert.Equal(t, int64(2), overview.Stats["total_projects"])
	assert.Equal(t, int64(2), overview.Stats["active_projects"])
	assert.Equal(t, int64(3), overview.Stats["total_tasks"])
	assert.Equal(t, int64(2), overview.Stats["pending_tasks"])
	assert.Equal(t, int64(5), overview.Stats["total_users"])
	assert.Equal(t, int64(0), overview.Stats["total_proposals"])
	assert.Equal(t, int64(0), overview.Stats["total_invoices"])
	assert.Equal(t, int64(0), overview.Stats["pending_invoices"])

	assert.Len(t, overview.RecentProjects, 2)
	assert.Len(t, overview.RecentTasks, 3)
}

func TestDashboardProjectManagerStats(t *testing.T) {
	svc, fx := newDashboardService(t)
	ctx := context.Background()

	_, pm, _ := seedDashboardWorld(t, fx.db)

	overview, err := svc.Overview(ctx, testutil.Actor(pm))
	require.NoError(t, err)

	assert.Equal(t, int64(1), overview.Stats["managed_projects"])
	assert.Equal(t, int64(1), overview.Stats["active_projects"])
	assert.Equal(t, int64(2), overview.Stats["total_tasks"])
	assert.Equal(t, int64(1), overview.Stats["pending_tasks"])
	assert.NotContains(t, overview.Stats, "total_users")

	assert.Len(t, overview.RecentProjects, 1)
	assert.Len(t, overview.RecentTasks, 2)
}

func TestDashboardFreelancerStats(t *testing.T) {
	svc, fx := newDashboardService(t)
	ctx := context.Background()

	_, _, freelancer := seedDashboardWorld(t, fx.db)

	overview, err := svc.Overview(ctx, testutil.Actor(freelancer))
	require.NoError(t, err)

	assert.Equal(t, int64(1), overview.Stats["assigned_tasks"])
	assert.Equal(t, int64(0), overview.Stats["pending_tasks"])
	assert.Equal(t, int64(1), overview.Stats["in_progress_tasks"])
	assert.Equal(t, int64(0), overview.Stats["completed_tasks"])
	assert.NotContains(t, overview.Stats, "total_projects")

	// Projects surface only through a task assignment.
	assert.Len(t, overview.RecentProjects, 1)
	assert.Len(t, overview.RecentTasks, 1)
}

func TestDashboardRecentLimit(t *testing.T) {
	svc, fx := newDashboardService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)
	project := testutil.SeedProject(t, fx.db, client, pm)
	for i := 0; i < 8; i++ {
		testutil.SeedTask(t, fx.db, project, nil)
	}

	overview, err := svc.Overview(ctx, testutil.Actor(admin))
	require.NoError(t, err)
	assert.Len(t, overview.RecentTasks, 5)
	assert.Equal(t, int64(8), overview.Stats["total_tasks"])
}
