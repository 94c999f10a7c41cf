package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freelanceflow/internal/metrics"
	"freelanceflow/internal/models"
	"freelanceflow/internal/policy"
	"freelanceflow/internal/repository"
)

// TaskInput is the flat payload submitted for task creation and update.
type TaskInput struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	ProjectID      string           `json:"project_id"`
	AssignedTo     string           `json:"assigned_to"`
	Status         string           `json:"status"`
	Priority       string           `json:"priority"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	ActualHours    *decimal.Decimal `json:"actual_hours"`
	DueDate        string           `json:"due_date"`
}

// TaskService implements task CRUD with role-scoped reads and role-gated writes.
type TaskService struct {
	repo     *repository.TaskRepository
	projects *repository.ProjectRepository
	users    *repository.UserRepository
	log      *zap.Logger
}

func NewTaskService(repo *repository.TaskRepository, projects *repository.ProjectRepository, users *repository.UserRepository, log *zap.Logger) *TaskService {
	return &TaskService{repo: repo, projects: projects, users: users, log: log}
}

// List returns the page of tasks the actor may see, newest-first.
func (s *TaskService) List(ctx context.Context, actor policy.Actor, page int) ([]models.Task, repository.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	scope := policy.Scope(actor, policy.Tasks)
	return s.repo.List(ctx, scope, page)
}

// Get returns a task by ID with project and assignee summaries.
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "task")
	}
	return task, nil
}

// Create validates the payload and stores a new task.
func (s *TaskService) Create(ctx context.Context, actor policy.Actor, in TaskInput) (*models.Task, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	parsed, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:          in.Title,
		Description:    in.Description,
		ProjectID:      parsed.projectID,
		AssignedTo:     parsed.assignedTo,
		Status:         models.TaskStatus(in.Status),
		Priority:       models.TaskPriority(in.Priority),
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		DueDate:        parsed.due,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "creating task")
	}
	metrics.RecordWrite("task", "create")
	s.log.Info("task created",
		zap.String("task_id", task.ID.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return s.Get(ctx, task.ID)
}

// Update validates the payload and replaces the mutable fields of an
// existing task.
func (s *TaskService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in TaskInput) (*models.Task, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "task")
	}
	parsed, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.ProjectID = parsed.projectID
	existing.Project = nil
	existing.AssignedTo = parsed.assignedTo
	existing.Assignee = nil
	existing.Status = models.TaskStatus(in.Status)
	existing.Priority = models.TaskPriority(in.Priority)
	existing.EstimatedHours = in.EstimatedHours
	existing.ActualHours = in.ActualHours
	existing.DueDate = parsed.due

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, errors.Wrap(err, "updating task")
	}
	metrics.RecordWrite("task", "update")
	return s.Get(ctx, id)
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !policy.CanWrite(actor) {
		return ErrForbidden
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if rows == 0 {
		return ErrNotFound
	}
	metrics.RecordWrite("task", "delete")
	return nil
}

type taskFields struct {
	projectID  uuid.UUID
	assignedTo *uuid.UUID
	due        *time.Time
}

func (s *TaskService) validate(ctx context.Context, in TaskInput) (*taskFields, error) {
	fe := fieldErrors{}

	if in.Title == "" {
		fe.add("title", "Task title is required.")
	}
	checkMaxLen(fe, "title", in.Title, 255)

	projectID := parseUUID(fe, "project_id", in.ProjectID, "Please select a project.")
	assignedTo := parseOptionalUUID(fe, "assigned_to", in.AssignedTo)

	if in.Status == "" {
		fe.add("status", "Task status is required.")
	} else if !models.ValidTaskStatus(in.Status) {
		fe.add("status", "The selected status is invalid.")
	}
	if in.Priority == "" {
		fe.add("priority", "Task priority is required.")
	} else if !models.ValidTaskPriority(in.Priority) {
		fe.add("priority", "The selected priority is invalid.")
	}

	checkNonNegative(fe, "estimated_hours", in.EstimatedHours, "Estimated hours must be at least 0.")
	checkNonNegative(fe, "actual_hours", in.ActualHours, "Actual hours must be at least 0.")

	due := parseDate(fe, "due_date", in.DueDate)

	if projectID != uuid.Nil {
		ok, err := s.projects.Exists(ctx, projectID)
		if err != nil {
			return nil, errors.Wrap(err, "checking project")
		}
		if !ok {
			fe.add("project_id", "Selected project is not valid.")
		}
	}
	if assignedTo != nil {
		ok, err := s.users.Exists(ctx, *assignedTo)
		if err != nil {
			return nil, errors.Wrap(err, "checking assignee")
		}
		if !ok {
			fe.add("assigned_to", "Selected assignee is not valid.")
		}
	}

	if err := fe.asError(); err != nil {
		return nil, err
	}
	return &taskFields{projectID: projectID, assignedTo: assignedTo, due: due}, nil
}
