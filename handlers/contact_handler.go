package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"

	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

type ContactHandler struct {
	contactService services.ContactService
	Helper         *helper.HTTPHelper
}

func NewContactHandler(contactService services.ContactService, h *helper.HTTPHelper) *ContactHandler {
	return &ContactHandler{contactService: contactService, Helper: h}
}

// SubmitMessage is the public contact form. It runs through the
// translated validator so the form gets per-field messages back.
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		h.Helper.SendValidationError(c, err.(validator.ValidationErrors))
		return
	}

	message, err := h.contactService.SubmitMessage(req)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Message sent successfully", message)
}

func (h *ContactHandler) GetMessages(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	unreadOnly := c.Query("unread") == "true"

	messages, total, err := h.contactService.GetMessages(params, unreadOnly)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"messages": messages,
		"paging":   h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid message ID", h.Helper.EmptyJsonMap())
		return
	}

	message, err := h.contactService.MarkRead(uint(id))
	if err != nil {
		h.Helper.SendNotFoundError(c, "Message not found", h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Message marked as read", message)
}

func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid message ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.contactService.DeleteMessage(uint(id)); err != nil {
		h.Helper.SendNotFoundError(c, "Message not found", h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Message deleted successfully", h.Helper.EmptyJsonMap())
}
