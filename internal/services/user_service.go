package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"freelanceflow/internal/auth"
	"freelanceflow/internal/metrics"
	"freelanceflow/internal/models"
	"freelanceflow/internal/policy"
	"freelanceflow/internal/repository"
)

// UserInput is the flat payload submitted for user creation and update.
// Password is optional on update; when empty the stored hash is kept.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

// UserService implements admin-only user management.
type UserService struct {
	repo *repository.UserRepository
	log  *zap.Logger
}

func NewUserService(repo *repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// List returns a page of users, newest-first. Admin only.
func (s *UserService) List(ctx context.Context, actor policy.Actor, page int) ([]models.User, repository.PageMeta, error) {
	if actor.Role != models.RoleAdmin {
		return nil, repository.PageMeta{}, ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, page)
}

// Get returns a user by ID. Admin only.
func (s *UserService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

// Profile returns a user's own record. Unlike Get it carries no role
// gate; callers must pass the authenticated user's ID.
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

// Create validates the payload and stores a new user with a hashed
// password. Admin only.
func (s *UserService) Create(ctx context.Context, actor policy.Actor, in UserInput) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := s.validate(ctx, in, uuid.Nil, true); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     models.Role(in.Role),
		IsActive: active,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Unique index backstop for concurrent registrations.
		return nil, duplicateOr(err, "email", "Email is already in use.", "user")
	}
	metrics.RecordWrite("user", "create")
	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Update validates the payload and replaces the mutable fields of an
// existing user. Admin only. Role changes are allowed; the next request
// by the affected user picks up the new role.
func (s *UserService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in UserInput) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	if err := s.validate(ctx, in, id, false); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.Role = models.Role(in.Role)
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, errors.Wrap(err, "hashing password")
		}
		existing.Password = hash
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, duplicateOr(err, "email", "Email is already in use.", "user")
	}
	metrics.RecordWrite("user", "update")
	return existing, nil
}

// Delete removes a user. Projects where the user is client or manager are
// cascade-deleted; tasks assigned to the user keep existing with a null
// assignee. Admin only; self-deletion is rejected.
func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if actor.ID == id {
		return singleFieldError("id", "You cannot delete your own account.")
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if rows == 0 {
		return ErrNotFound
	}
	metrics.RecordWrite("user", "delete")
	s.log.Info("user deleted",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

func (s *UserService) validate(ctx context.Context, in UserInput, exclude uuid.UUID, passwordRequired bool) error {
	fe := fieldErrors{}

	if in.Name == "" {
		fe.add("name", "Name is required.")
	}
	checkMaxLen(fe, "name", in.Name, 255)

	if in.Email == "" {
		fe.add("email", "Email is required.")
	} else {
		taken, err := s.repo.EmailTaken(ctx, in.Email, exclude)
		if err != nil {
			return errors.Wrap(err, "checking email")
		}
		if taken {
			fe.add("email", "Email is already in use.")
		}
	}

	if in.Password == "" {
		if passwordRequired {
			fe.add("password", "Password is required.")
		}
	} else if len(in.Password) < 8 {
		fe.add("password", "Password must be at least 8 characters.")
	}

	if in.Role == "" {
		fe.add("role", "Role is required.")
	} else if !models.ValidRole(in.Role) {
		fe.add("role", "The selected role is invalid.")
	}

	return fe.asError()
}
