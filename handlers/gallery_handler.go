package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

type GalleryHandler struct {
	galleryService services.GalleryService
	Helper         *helper.HTTPHelper
}

func NewGalleryHandler(galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, Helper: &helper.HTTPHelper{}}
}

func (h *GalleryHandler) CreateImage(c *gin.Context) {
	var req models.GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	image, err := h.galleryService.CreateImage(req)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Gallery image created successfully", image)
}

func (h *GalleryHandler) UpdateImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid gallery image ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	image, err := h.galleryService.UpdateImage(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Gallery image not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Gallery image updated successfully", image)
}

func (h *GalleryHandler) GetImages(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	images, total, err := h.galleryService.GetImages(params)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"images": images,
		"paging": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid gallery image ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.galleryService.DeleteImage(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Gallery image not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Gallery image deleted successfully", h.Helper.EmptyJsonMap())
}
