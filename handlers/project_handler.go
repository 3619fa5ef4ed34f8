package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
	Helper         *helper.HTTPHelper
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, Helper: &helper.HTTPHelper{}}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	project, err := h.projectService.CreateProject(req)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Project created successfully", project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid project ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Project not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Project updated successfully", project)
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	h.listProjects(c, false)
}

func (h *ProjectHandler) GetPublicProjects(c *gin.Context) {
	h.listProjects(c, true)
}

func (h *ProjectHandler) listProjects(c *gin.Context, isPublic bool) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	projects, total, err := h.projectService.GetProjects(params, isPublic)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"projects": projects,
		"paging":   h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *ProjectHandler) GetPublicProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid project ID", h.Helper.EmptyJsonMap())
		return
	}

	project, err := h.projectService.GetProject(uint(id), true)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Project not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid project ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Project not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Project deleted successfully", h.Helper.EmptyJsonMap())
}
