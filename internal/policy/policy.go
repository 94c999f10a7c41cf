// Package policy implements the role-scoped data-visibility rules that
// decide which Project and Task rows an actor may read. The same scope is
// applied to paginated listings and to dashboard aggregates so both views
// always agree.
package policy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID       uuid.UUID
	Role     models.Role
	IsActive bool
}

// Entity selects which table a scope filters.
type Entity int

const (
	Projects Entity = iota
	Tasks
)

// Visibility is the capability granted by a role. Exactly one variant
// applies per actor since roles are mutually exclusive.
type Visibility int

const (
	// ViewAll grants unrestricted reads (admin).
	ViewAll Visibility = iota
	// ViewOwnManaged restricts reads to projects the actor manages and
	// the tasks inside them (project_manager).
	ViewOwnManaged
	// ViewOwnAssigned restricts reads to tasks assigned to the actor and
	// the projects containing at least one such task (freelancer).
	ViewOwnAssigned
)

// ForRole maps a role to its visibility capability.
func ForRole(role models.Role) Visibility {
	switch role {
	case models.RoleAdmin:
		return ViewAll
	case models.RoleProjectManager:
		return ViewOwnManaged
	default:
		return ViewOwnAssigned
	}
}

// Scope returns the GORM scope restricting entity rows to what actor may
// see. This is the single place role filtering is expressed; services must
// not re-branch on role.
func Scope(actor Actor, entity Entity) func(*gorm.DB) *gorm.DB {
	v := ForRole(actor.Role)
	return func(db *gorm.DB) *gorm.DB {
		switch v {
		case ViewAll:
			return db
		case ViewOwnManaged:
			if entity == Projects {
				return db.Where("project_manager_id = ?", actor.ID)
			}
			return db.Where(
				"project_id IN (SELECT id FROM projects WHERE project_manager_id = ?)",
				actor.ID,
			)
		default: // ViewOwnAssigned
			if entity == Projects {
				return db.Where(
					"EXISTS (SELECT 1 FROM tasks WHERE tasks.project_id = projects.id AND tasks.assigned_to = ?)",
					actor.ID,
				)
			}
			return db.Where("assigned_to = ?", actor.ID)
		}
	}
}

// BillingScope restricts Proposal and Invoice rows. Admins see everything,
// project managers see records they created, freelancers see records where
// they are the client.
func BillingScope(actor Actor) func(*gorm.DB) *gorm.DB {
	v := ForRole(actor.Role)
	return func(db *gorm.DB) *gorm.DB {
		switch v {
		case ViewAll:
			return db
		case ViewOwnManaged:
			return db.Where("created_by = ?", actor.ID)
		default:
			return db.Where("client_id = ?", actor.ID)
		}
	}
}

// CanWrite reports whether the actor's role may create, update or delete
// records. Freelancers are read-only; this check is independent of the
// visibility scope and runs before validation.
func CanWrite(actor Actor) bool {
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleProjectManager
}
