package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type TaskHandler struct {
	service *services.TaskService
	log     *zap.Logger
}

func NewTaskHandler(service *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: log}
}

// ListTasks returns the visible tasks
// @Summary List tasks
// @Description List the tasks visible to the authenticated user, newest first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated tasks"
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	tasks, meta, err := h.service.List(c.UserContext(), actor, pageParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return pagedJSON(c, tasks, meta)
}

// GetTask returns a task by ID
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" Format(uuid)
// @Success 200 {object} models.Task "Task found"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	task, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(task)
}

// CreateTask creates a new task
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body services.TaskInput true "Task data"
// @Success 201 {object} models.Task "Task created"
// @Failure 403 {object} map[string]interface{} "Role may not write"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var in services.TaskInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	task, err := h.service.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask updates a task
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" Format(uuid)
// @Param task body services.TaskInput true "Updated task data"
// @Success 200 {object} models.Task "Updated task"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	var in services.TaskInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	task, err := h.service.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(task)
}

// DeleteTask deletes a task
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Task deleted"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Task deleted",
	})
}
