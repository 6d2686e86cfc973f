package handlers

import (
	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/services"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	attachmentService services.AttachmentService
	userService       services.UserService
	Helper            *helper.HTTPHelper
}

func NewAttachmentHandler(attachmentService services.AttachmentService, userService services.UserService, h *helper.HTTPHelper) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService, userService: userService, Helper: h}
}

// CreateAttachment stores the metadata and hands back a presigned PUT URL
// the client uploads the bytes to.
func (h *AttachmentHandler) CreateAttachment(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	upload, err := h.attachmentService.CreateAttachment(c.Request.Context(), entryID, userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Attachment created", upload)
}

func (h *AttachmentHandler) GetAttachments(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid entry id", h.Helper.EmptyJsonMap())
		return
	}

	attachments, err := h.attachmentService.GetAttachments(entryID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Attachments loaded", attachments)
}

func (h *AttachmentHandler) GetDownloadURL(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid attachment id", h.Helper.EmptyJsonMap())
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Download URL generated", map[string]interface{}{"download_url": url})
}

func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "Invalid attachment id", h.Helper.EmptyJsonMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	actor, err := h.userService.GetUser(userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	attachment, err := h.attachmentService.GetAttachment(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	if !services.Can(actor, services.ActionDelete, attachment) {
		h.Helper.SendServiceError(c, models.ErrorForbidden{Message: "only the uploader or an admin may delete this attachment"})
		return
	}

	if err := h.attachmentService.DeleteAttachment(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Attachment deleted", h.Helper.EmptyJsonMap())
}
