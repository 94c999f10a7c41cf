// Package testutil provides the in-memory database and seed helpers
// shared by the service tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
	"freelanceflow/internal/policy"
)

// Actor wraps a seeded user as the acting identity for service calls.
func Actor(u *models.User) policy.Actor {
	return policy.Actor{ID: u.ID, Role: u.Role, IsActive: u.IsActive}
}

// NewDB opens an in-memory sqlite database with the full schema migrated.
// A single connection keeps the shared memory store alive for the test's
// duration, and foreign keys are switched on so cascade and set-null
// behavior matches the production schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Proposal{},
		&models.Invoice{},
		&models.Attachment{},
	))
	return db
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "User " + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedProject inserts a project owned by the given client and manager.
func SeedProject(t *testing.T, db *gorm.DB, client, manager *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:             "Project " + uuid.NewString()[:8],
		ClientID:         client.ID,
		ProjectManagerID: manager.ID,
		Status:           models.ProjectActive,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// SeedTask inserts a task in the project, optionally assigned.
func SeedTask(t *testing.T, db *gorm.DB, project *models.Project, assignee *models.User) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:     "Task " + uuid.NewString()[:8],
		ProjectID: project.ID,
		Status:    models.TaskPending,
		Priority:  models.PriorityMedium,
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
