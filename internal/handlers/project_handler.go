package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type ProjectHandler struct {
	service *services.ProjectService
	log     *zap.Logger
}

func NewProjectHandler(service *services.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{service: service, log: log}
}

// ListProjects returns the visible projects
// @Summary List projects
// @Description List the projects visible to the authenticated user, newest first
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated projects"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	projects, meta, err := h.service.List(c.UserContext(), actor, pageParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return pagedJSON(c, projects, meta)
}

// GetProject returns a project by ID
// @Summary Get a project
// @Description Get a project with its tasks and related users
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} models.Project "Project found"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	project, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(project)
}

// CreateProject creates a new project
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} models.Project "Project created"
// @Failure 403 {object} map[string]interface{} "Role may not write"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var in services.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	project, err := h.service.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject updates a project
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param project body services.ProjectInput true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	var in services.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	project, err := h.service.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(project)
}

// DeleteProject deletes a project
// @Summary Delete a project
// @Description Delete a project; its tasks, invoices and attachments follow
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Project deleted"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted",
	})
}
