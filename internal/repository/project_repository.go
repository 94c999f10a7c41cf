package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
)

// Scope is a query restriction produced by the visibility policy.
type Scope = func(*gorm.DB) *gorm.DB

// ProjectRepository provides methods to interact with the Project model in the database.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance with the provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new Project in the database.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a Project by its ID with client and manager summaries.
func (r *ProjectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("ProjectManager").
		First(&project, "id = ?", id).Error
	return &project, err
}

// GetWithTasks retrieves a Project along with its tasks and their assignees.
func (r *ProjectRepository) GetWithTasks(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("ProjectManager").
		Preload("Tasks").
		Preload("Tasks.Assignee").
		First(&project, "id = ?", id).Error
	return &project, err
}

// Update persists changes to an existing Project.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a Project by ID; its tasks go with it per the cascade
// constraint. Returns the number of rows removed.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// List retrieves visible Projects newest-first, paginated.
func (r *ProjectRepository) List(ctx context.Context, scope Scope, page int) ([]models.Project, PageMeta, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Client").
		Preload("ProjectManager").
		Order("created_at DESC").
		Limit(DefaultPerPage).
		Offset(offset(page)).
		Find(&projects).Error
	return projects, pageMeta(page, total), err
}

// Recent returns the most recently created visible Projects.
func (r *ProjectRepository) Recent(ctx context.Context, scope Scope, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Client").
		Preload("ProjectManager").
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// Count returns the number of visible Projects matching the optional
// status filter.
func (r *ProjectRepository) Count(ctx context.Context, scope Scope, status models.ProjectStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(scope)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// Exists reports whether a project row with the given ID exists.
func (r *ProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
