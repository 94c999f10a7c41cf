package services

import (
	"context"

	"github.com/pkg/errors"

	"freelanceflow/internal/models"
	"freelanceflow/internal/policy"
	"freelanceflow/internal/repository"
)

const recentLimit = 5

// DashboardOverview is the read-only reporting payload: a fixed set of
// named counters per role plus the most recently created visible records.
// Computed fresh on every request; there is no caching.
type DashboardOverview struct {
	Stats          map[string]int64 `json:"stats"`
	RecentProjects []models.Project `json:"recent_projects"`
	RecentTasks    []models.Task    `json:"recent_tasks"`
	UserRole       models.Role      `json:"user_role"`
}

// DashboardService aggregates counts over the visibility-scoped sets.
type DashboardService struct {
	projects  *repository.ProjectRepository
	tasks     *repository.TaskRepository
	users     *repository.UserRepository
	proposals *repository.ProposalRepository
	invoices  *repository.InvoiceRepository
}

func NewDashboardService(
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	users *repository.UserRepository,
	proposals *repository.ProposalRepository,
	invoices *repository.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		projects:  projects,
		tasks:     tasks,
		users:     users,
		proposals: proposals,
		invoices:  invoices,
	}
}

// Overview computes the role-specific counters and recent records. The
// same policy scope used for listings filters every aggregate, so the
// dashboard can never disagree with the list views.
func (s *DashboardService) Overview(ctx context.Context, actor policy.Actor) (*DashboardOverview, error) {
	projectScope := policy.Scope(actor, policy.Projects)
	taskScope := policy.Scope(actor, policy.Tasks)

	stats, err := s.stats(ctx, actor, projectScope, taskScope)
	if err != nil {
		return nil, err
	}

	recentProjects, err := s.projects.Recent(ctx, projectScope, recentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "loading recent projects")
	}
	recentTasks, err := s.tasks.Recent(ctx, taskScope, recentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "loading recent tasks")
	}

	return &DashboardOverview{
		Stats:          stats,
		RecentProjects: recentProjects,
		RecentTasks:    recentTasks,
		UserRole:       actor.Role,
	}, nil
}

func (s *DashboardService) stats(ctx context.Context, actor policy.Actor, projectScope, taskScope repository.Scope) (map[string]int64, error) {
	stats := map[string]int64{}

	count := func(name string, fn func() (int64, error)) error {
		n, err := fn()
		if err != nil {
			return errors.Wrapf(err, "counting %s", name)
		}
		stats[name] = n
		return nil
	}

	switch policy.ForRole(actor.Role) {
	case policy.ViewAll:
		checks := []struct {
			name string
			fn   func() (int64, error)
		}{
			{"total_projects", func() (int64, error) { return s.projects.Count(ctx, projectScope, "") }},
			{"active_projects", func() (int64, error) { return s.projects.Count(ctx, projectScope, models.ProjectActive) }},
			{"total_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, "") }},
			{"pending_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, models.TaskPending) }},
			{"total_users", func() (int64, error) { return s.users.Count(ctx) }},
			{"total_proposals", func() (int64, error) { return s.proposals.Count(ctx) }},
			{"total_invoices", func() (int64, error) { return s.invoices.Count(ctx, "") }},
			{"pending_invoices", func() (int64, error) { return s.invoices.Count(ctx, models.InvoiceSent) }},
		}
		for _, c := range checks {
			if err := count(c.name, c.fn); err != nil {
				return nil, err
			}
		}
	case policy.ViewOwnManaged:
		checks := []struct {
			name string
			fn   func() (int64, error)
		}{
			{"managed_projects", func() (int64, error) { return s.projects.Count(ctx, projectScope, "") }},
			{"active_projects", func() (int64, error) { return s.projects.Count(ctx, projectScope, models.ProjectActive) }},
			{"total_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, "") }},
			{"pending_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, models.TaskPending) }},
		}
		for _, c := range checks {
			if err := count(c.name, c.fn); err != nil {
				return nil, err
			}
		}
	default:
		checks := []struct {
			name string
			fn   func() (int64, error)
		}{
			{"assigned_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, "") }},
			{"pending_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, models.TaskPending) }},
			{"in_progress_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, models.TaskInProgress) }},
			{"completed_tasks", func() (int64, error) { return s.tasks.Count(ctx, taskScope, models.TaskCompleted) }},
		}
		for _, c := range checks {
			if err := count(c.name, c.fn); err != nil {
				return nil, err
			}
		}
	}
	return stats, nil
}
