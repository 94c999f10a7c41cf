package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type UserHandler struct {
	service *services.UserService
	log     *zap.Logger
}

func NewUserHandler(service *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

// ListUsers returns a page of users
// @Summary List users
// @Description List all users, newest first. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated users"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	users, meta, err := h.service.List(c.UserContext(), actor, pageParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return pagedJSON(c, users, meta)
}

// GetUser returns a user by ID
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} models.User "User found"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	user, err := h.service.Get(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// CreateUser creates a new user
// @Summary Create a user
// @Description Create a user with a hashed password. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body services.UserInput true "User data"
// @Success 201 {object} models.User "User created"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	user, err := h.service.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser updates a user
// @Summary Update a user
// @Description Update a user; an empty password keeps the current one. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Param user body services.UserInput true "Updated user data"
// @Success 200 {object} models.User "Updated user"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	user, err := h.service.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// DeleteUser deletes a user
// @Summary Delete a user
// @Description Delete a user. Admin only; self-deletion is rejected.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "User deleted"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}
