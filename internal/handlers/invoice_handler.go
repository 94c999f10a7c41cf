package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type InvoiceHandler struct {
	service *services.InvoiceService
	log     *zap.Logger
}

func NewInvoiceHandler(service *services.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

// ListInvoices returns the visible invoices
// @Summary List invoices
// @Description Admins see all invoices, project managers the ones they created, freelancers the ones billed to them
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{} "Paginated invoices"
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	invoices, meta, err := h.service.List(c.UserContext(), actor, pageParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return pagedJSON(c, invoices, meta)
}

// GetInvoice returns an invoice by ID
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID" Format(uuid)
// @Success 200 {object} models.Invoice "Invoice found"
// @Failure 404 {object} map[string]interface{} "Invoice not found"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	invoice, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(invoice)
}

// CreateInvoice creates a new invoice
// @Summary Create an invoice
// @Description Create an invoice; the invoice number must be unique and total must equal amount plus tax
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invoice body services.InvoiceInput true "Invoice data"
// @Success 201 {object} models.Invoice "Invoice created"
// @Failure 403 {object} map[string]interface{} "Role may not write"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var in services.InvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	invoice, err := h.service.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// UpdateInvoice updates an invoice
// @Summary Update an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID" Format(uuid)
// @Param invoice body services.InvoiceInput true "Updated invoice data"
// @Success 200 {object} models.Invoice "Updated invoice"
// @Failure 404 {object} map[string]interface{} "Invoice not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	var in services.InvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	invoice, err := h.service.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(invoice)
}

// DeleteInvoice deletes an invoice
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Invoice deleted"
// @Failure 404 {object} map[string]interface{} "Invoice not found"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Invoice deleted",
	})
}
