package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

type TeamHandler struct {
	teamService services.TeamService
	Helper      *helper.HTTPHelper
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService, Helper: &helper.HTTPHelper{}}
}

func (h *TeamHandler) CreateMember(c *gin.Context) {
	var req models.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	member, err := h.teamService.CreateMember(req)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Team member created successfully", member)
}

func (h *TeamHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid team member ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	member, err := h.teamService.UpdateMember(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Team member not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Team member updated successfully", member)
}

func (h *TeamHandler) GetMembers(c *gin.Context) {
	members, err := h.teamService.GetMembers()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", members)
}

func (h *TeamHandler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid team member ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.teamService.DeleteMember(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Team member not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Team member deleted successfully", h.Helper.EmptyJsonMap())
}
