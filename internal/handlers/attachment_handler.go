package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type AttachmentHandler struct {
	service *services.AttachmentService
	log     *zap.Logger
}

func NewAttachmentHandler(service *services.AttachmentService, log *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{service: service, log: log}
}

// ListAttachments returns a project's attachments
// @Summary List project attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {array} models.Attachment "Attachments"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/attachments [get]
func (h *AttachmentHandler) ListAttachments(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	attachments, err := h.service.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(attachments)
}

// UploadAttachment stores a file under a project
// @Summary Upload a project attachment
// @Description Upload a file; zip, tar and gz archives are unpacked and stored per contained file
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" Format(uuid)
// @Param file formData file true "File to upload"
// @Success 201 {array} models.Attachment "Stored attachments"
// @Failure 403 {object} map[string]interface{} "Role may not write"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/attachments [post]
func (h *AttachmentHandler) UploadAttachment(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, err)
	}
	actor := middleware.ActorFromCtx(c)
	attachments, err := h.service.Upload(c.UserContext(), actor, projectID, fileHeader)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attachments)
}

// DownloadAttachment streams an attachment's content
// @Summary Download an attachment
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Attachment ID" Format(uuid)
// @Success 200 {file} binary "File content"
// @Failure 404 {object} map[string]interface{} "Attachment not found"
// @Router /attachments/{id}/download [get]
func (h *AttachmentHandler) DownloadAttachment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	att, reader, err := h.service.Download(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer reader.Close()

	c.Set(fiber.HeaderContentType, att.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+att.FileName+`"`)
	return c.SendStream(reader, int(att.Size))
}

// DeleteAttachment removes an attachment
// @Summary Delete an attachment
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attachment ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Attachment deleted"
// @Failure 403 {object} map[string]interface{} "Role may not write"
// @Failure 404 {object} map[string]interface{} "Attachment not found"
// @Router /attachments/{id} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Attachment deleted",
	})
}
