package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

type PodcastHandler struct {
	podcastService services.PodcastService
	Helper         *helper.HTTPHelper
}

func NewPodcastHandler(podcastService services.PodcastService) *PodcastHandler {
	return &PodcastHandler{podcastService: podcastService, Helper: &helper.HTTPHelper{}}
}

func (h *PodcastHandler) CreateEpisode(c *gin.Context) {
	var req models.PodcastEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	episode, err := h.podcastService.CreateEpisode(req)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Episode created successfully", episode)
}

func (h *PodcastHandler) UpdateEpisode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid episode ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.PodcastEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	episode, err := h.podcastService.UpdateEpisode(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Episode not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Episode updated successfully", episode)
}

func (h *PodcastHandler) GetEpisodes(c *gin.Context) {
	h.listEpisodes(c, false)
}

func (h *PodcastHandler) GetPublicEpisodes(c *gin.Context) {
	h.listEpisodes(c, true)
}

func (h *PodcastHandler) listEpisodes(c *gin.Context, isPublic bool) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	episodes, total, err := h.podcastService.GetEpisodes(params, isPublic)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"episodes": episodes,
		"paging":   h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *PodcastHandler) GetPublicEpisode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid episode ID", h.Helper.EmptyJsonMap())
		return
	}

	episode, err := h.podcastService.GetEpisode(uint(id), true)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Episode not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", episode)
}

func (h *PodcastHandler) DeleteEpisode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid episode ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.podcastService.DeleteEpisode(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Episode not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Episode deleted successfully", h.Helper.EmptyJsonMap())
}
