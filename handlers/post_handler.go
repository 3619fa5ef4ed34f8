package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen-cms/content"
	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService, Helper: &helper.HTTPHelper{}}
}

// GetPosts lists posts for the admin dashboard, with the full filter
// surface (status, category, tag, author, search, sort).
func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	posts, total, err := h.postService.GetPosts(params, false)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"posts":  posts,
		"paging": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.GetPost(uint(id), false)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	if err := h.postService.DeletePost(c.Request.Context(), uint(id), userID.(uint), models.UserRole(role.(string))); err != nil {
		h.sendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post deleted successfully", h.Helper.EmptyJsonMap())
}

// GetPublicPosts is the visitor-facing listing: published posts only.
func (h *PostHandler) GetPublicPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	posts, total, err := h.postService.GetPosts(params, true)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"posts":  posts,
		"paging": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

// GetResources lists the published posts filed under the resources
// category, the downloads/guides section of the public site.
func (h *PostHandler) GetResources(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Category = "resources"

	posts, total, err := h.postService.GetPosts(params, true)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"posts":  posts,
		"paging": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *PostHandler) GetPublicPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.GetPost(uint(id), true)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", publicPostView(post))
}

func (h *PostHandler) GetPublicPostBySlug(c *gin.Context) {
	post, err := h.postService.GetPostBySlug(c.Param("slug"), true)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", publicPostView(post))
}

// publicPostView decorates a post with the derived reading metadata
// the article page renders next to the body.
func publicPostView(post *models.Post) map[string]interface{} {
	html := post.Body.HTML()
	return map[string]interface{}{
		"post":         post,
		"html":         html,
		"outline":      content.Outline(html),
		"word_count":   post.WordCount(),
		"reading_time": post.ReadingTime(),
	}
}

func (h *PostHandler) sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
	case errors.Is(err, services.ErrUnauthorized):
		h.Helper.SendUnauthorizedError(c, "You do not have permission for this post", h.Helper.EmptyJsonMap())
	default:
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
	}
}
