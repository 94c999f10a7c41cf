package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
)

// TaskRepository provides methods to interact with the Task model in the database.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository instance with the provided GORM database connection.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new Task in the database.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Get retrieves a Task by its ID with project and assignee summaries.
func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		First(&task, "id = ?", id).Error
	return &task, err
}

// Update persists changes to an existing Task.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a Task by ID. Returns the number of rows removed.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// List retrieves visible Tasks newest-first, paginated.
func (r *TaskRepository) List(ctx context.Context, scope Scope, page int) ([]models.Task, PageMeta, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Project").
		Preload("Assignee").
		Order("created_at DESC").
		Limit(DefaultPerPage).
		Offset(offset(page)).
		Find(&tasks).Error
	return tasks, pageMeta(page, total), err
}

// Recent returns the most recently created visible Tasks.
func (r *TaskRepository) Recent(ctx context.Context, scope Scope, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Project").
		Preload("Assignee").
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// Count returns the number of visible Tasks matching the optional status filter.
func (r *TaskRepository) Count(ctx context.Context, scope Scope, status models.TaskStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Task{}).Scopes(scope)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
