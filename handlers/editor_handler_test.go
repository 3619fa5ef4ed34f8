package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lumen-cms/config"
	"lumen-cms/editor"
	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
	"lumen-cms/services"
)

type stubMediaService struct{}

func (stubMediaService) Upload(ctx context.Context, filename, contentType string, data []byte) (media.UploadResult, error) {
	return media.UploadResult{}, nil
}

func (stubMediaService) Delete(ctx context.Context, handle string) error { return nil }

type envelope struct {
	Code    int             `json:"code"`
	Message json.RawMessage `json:"code_message"`
	Data    json.RawMessage `json:"data"`
}

func newEditorRouter(t *testing.T) (*gin.Engine, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	user := models.User{Username: "writer", Email: "writer@example.com", Password: "x", Role: models.RoleWriter}
	require.NoError(t, db.Create(&user).Error)

	log := logrus.New()
	postService := services.NewPostService(
		repositories.NewPostRepository(db),
		repositories.NewTagRepository(db),
		media.NewAdapter(stubMediaService{}, log),
		nil,
		log,
	)
	manager := editor.NewManager(postService, nil, time.Hour)

	editorHandler := NewEditorHandler(manager, postService)
	postHandler := NewPostHandler(postService)

	router := gin.New()
	authed := router.Group("/", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("role", string(user.Role))
	})
	sessions := authed.Group("/editor/sessions")
	{
		sessions.POST("", editorHandler.OpenSession)
		sessions.GET("/:id", editorHandler.GetSession)
		sessions.PUT("/:id/content", editorHandler.SetContent)
		sessions.PUT("/:id/markdown", editorHandler.SetMarkdown)
		sessions.PUT("/:id/mode", editorHandler.SwitchMode)
		sessions.POST("/:id/submit", editorHandler.Submit)
		sessions.DELETE("/:id", editorHandler.CloseSession)
	}
	authed.GET("/posts/:id", postHandler.GetPost)

	return router, user
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestEditorSessionLifecycle(t *testing.T) {
	router, author := newEditorRouter(t)

	// open a session for a brand-new document
	w, env := doJSON(t, router, http.MethodPost, "/editor/sessions", gin.H{"post_id": 0})
	require.Equal(t, http.StatusOK, w.Code)

	var opened struct {
		SessionID string `json:"session_id"`
		PostID    uint   `json:"post_id"`
		Mode      string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opened))
	require.NotEmpty(t, opened.SessionID)
	assert.Zero(t, opened.PostID)
	assert.Equal(t, "visual", opened.Mode)

	base := "/editor/sessions/" + opened.SessionID

	w, _ = doJSON(t, router, http.MethodPut, base+"/content", gin.H{"body": "<p>hello from the editor</p>"})
	require.Equal(t, http.StatusOK, w.Code)

	// switch to markdown: the response carries the converted source
	w, env = doJSON(t, router, http.MethodPut, base+"/mode", gin.H{"mode": "markdown"})
	require.Equal(t, http.StatusOK, w.Code)
	var switched struct {
		Mode     string `json:"mode"`
		Markdown string `json:"markdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &switched))
	assert.Equal(t, "markdown", switched.Mode)
	assert.Contains(t, switched.Markdown, "hello from the editor")

	// submit publishes the session snapshot
	w, env = doJSON(t, router, http.MethodPost, base+"/submit", gin.H{
		"title":  "Hello World",
		"status": "published",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.NotZero(t, post.ID)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Contains(t, post.Body.HTML(), "hello from the editor")

	// the session now tracks the stored identifier
	_, env = doJSON(t, router, http.MethodGet, base, nil)
	var state struct {
		PostID uint `json:"post_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, post.ID, state.PostID)

	// and the post is readable through the admin surface
	w, _ = doJSON(t, router, http.MethodGet, "/posts/"+strconv.FormatUint(uint64(post.ID), 10), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorSessionUnknownID(t *testing.T) {
	router, _ := newEditorRouter(t)

	w, _ := doJSON(t, router, http.MethodPut, "/editor/sessions/nope/content", gin.H{"body": "<p>x</p>"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorSetMarkdownRejectedInVisualMode(t *testing.T) {
	router, _ := newEditorRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/editor/sessions", gin.H{"post_id": 0})
	var opened struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opened))

	w, _ := doJSON(t, router, http.MethodPut, "/editor/sessions/"+opened.SessionID+"/markdown", gin.H{"markdown": "# nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
