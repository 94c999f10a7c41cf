package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type ProposalHandler struct {
	service *services.ProposalService
	log     *zap.Logger
}

func NewProposalHandler(service *services.ProposalService, log *zap.Logger) *ProposalHandler {
	return &ProposalHandler{service: service, log: log}
}

// ListProposals returns the visible proposals
// @Summary List proposals
// @Description Admins see all proposals, project managers the ones they created, freelancers the ones addressed to them
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated proposals"
// @Router /proposals [get]
func (h *ProposalHandler) ListProposals(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	proposals, meta, err := h.service.List(c.UserContext(), actor, pageParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return pagedJSON(c, proposals, meta)
}

// GetProposal returns a proposal by ID
// @Summary Get a proposal
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID" Format(uuid)
// @Success 200 {object} models.Proposal "Proposal found"
// @Failure 404 {object} map[string]interface{} "Proposal not found"
// @Router /proposals/{id} [get]
func (h *ProposalHandler) GetProposal(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	proposal, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(proposal)
}

// CreateProposal creates a new proposal
// @Summary Create a proposal
// @Description Create a proposal; the authenticated user is recorded as its author
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param proposal body services.ProposalInput true "Proposal data"
// @Success 201 {object} models.Proposal "Proposal created"
// @Failure 403 {object} map[string]interface{} "Role may not write"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /proposals [post]
func (h *ProposalHandler) CreateProposal(c *fiber.Ctx) error {
	var in services.ProposalInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	proposal, err := h.service.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

// UpdateProposal updates a proposal
// @Summary Update a proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID" Format(uuid)
// @Param proposal body services.ProposalInput true "Updated proposal data"
// @Success 200 {object} models.Proposal "Updated proposal"
// @Failure 404 {object} map[string]interface{} "Proposal not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /proposals/{id} [put]
func (h *ProposalHandler) UpdateProposal(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	var in services.ProposalInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	proposal, err := h.service.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(proposal)
}

// DeleteProposal deletes a proposal
// @Summary Delete a proposal
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Proposal deleted"
// @Failure 404 {object} map[string]interface{} "Proposal not found"
// @Router /proposals/{id} [delete]
func (h *ProposalHandler) DeleteProposal(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Proposal deleted",
	})
}
