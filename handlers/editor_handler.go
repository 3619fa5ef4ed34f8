package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lumen-cms/content"
	"lumen-cms/editor"
	"lumen-cms/helper"
	"lumen-cms/models"
	"lumen-cms/services"
)

// EditorHandler exposes the editing sessions: one is opened per
// document being edited, holds the live representation server-side,
// and autosaves after the quiet period.
type EditorHandler struct {
	manager     *editor.Manager
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewEditorHandler(manager *editor.Manager, postService services.PostService) *EditorHandler {
	return &EditorHandler{manager: manager, postService: postService, Helper: &helper.HTTPHelper{}}
}

// OpenSession starts a session. post_id 0 opens a fresh document that
// does not exist in the store yet; autosave stays off until the first
// explicit save assigns it an id.
func (h *EditorHandler) OpenSession(c *gin.Context) {
	var req models.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	body := content.BlockContent(content.NewDocument())
	if req.PostID != 0 {
		post, err := h.postService.GetPost(req.PostID, false)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
				return
			}
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
			return
		}
		body = post.Body
	}

	session := h.manager.Open(req.PostID, body)
	h.Helper.SendSuccess(c, "Session opened", map[string]interface{}{
		"session_id": session.ID(),
		"post_id":    session.PostID(),
		"mode":       session.Mode(),
		"body":       session.Snapshot(),
	})
}

func (h *EditorHandler) GetSession(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		h.Helper.SendNotFoundError(c, "Session not found", h.Helper.EmptyJsonMap())
		return
	}

	resp := map[string]interface{}{
		"session_id": session.ID(),
		"post_id":    session.PostID(),
		"mode":       session.Mode(),
	}
	if session.Mode() == editor.ModeMarkdown {
		resp["markdown"] = session.Markdown()
	} else {
		resp["body"] = session.Snapshot()
	}

	h.Helper.SendSuccess(c, "Success", resp)
}

// SetContent replaces the visual representation. Valid only in visual
// mode.
func (h *EditorHandler) SetContent(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		h.Helper.SendNotFoundError(c, "Session not found", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SetContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := session.SetContent(req.Body); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Content updated", h.Helper.EmptyJsonMap())
}

// SetMarkdown replaces the markdown source. Valid only in markdown
// mode.
func (h *EditorHandler) SetMarkdown(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		h.Helper.SendNotFoundError(c, "Session not found", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SetMarkdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := session.SetMarkdown(req.Markdown); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Markdown updated", h.Helper.EmptyJsonMap())
}

// SwitchMode converts the live representation at the boundary. On a
// failed markdown parse the session stays in its current mode.
func (h *EditorHandler) SwitchMode(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		h.Helper.SendNotFoundError(c, "Session not found", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SwitchModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := session.SwitchMode(editor.Mode(req.Mode)); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	resp := map[string]interface{}{"mode": session.Mode()}
	if session.Mode() == editor.ModeMarkdown {
		resp["markdown"] = session.Markdown()
	} else {
		resp["body"] = session.Snapshot()
	}

	h.Helper.SendSuccess(c, "Mode switched", resp)
}

// Submit is the explicit save: it snapshots the live representation
// and writes the full document, with autosave suppressed for the
// duration so the two paths cannot race.
func (h *EditorHandler) Submit(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		h.Helper.SendNotFoundError(c, "Session not found", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SubmitPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	session.BeginSubmit()
	defer session.EndSubmit()

	body := session.Snapshot()

	var post *models.Post
	var err error
	if session.PostID() == 0 {
		post, err = h.postService.CreatePost(c.Request.Context(), req, body, userID.(uint))
		if err == nil {
			session.SetPostID(post.ID)
		}
	} else {
		post, err = h.postService.UpdatePost(c.Request.Context(), session.PostID(), req, body, userID.(uint), models.UserRole(role.(string)))
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
		case errors.Is(err, services.ErrUnauthorized):
			h.Helper.SendUnauthorizedError(c, "You do not have permission for this post", h.Helper.EmptyJsonMap())
		default:
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		}
		return
	}

	h.Helper.SendSuccess(c, "Post saved successfully", post)
}

// CloseSession tears the session down and drops any pending autosave.
func (h *EditorHandler) CloseSession(c *gin.Context) {
	h.manager.Close(c.Param("id"))
	h.Helper.SendSuccess(c, "Session closed", h.Helper.EmptyJsonMap())
}
