package services

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lumen-cms/config"
	"lumen-cms/content"
	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

type recordingMedia struct {
	mu      sync.Mutex
	deletes []string
}

func (r *recordingMedia) Upload(ctx context.Context, filename, contentType string, data []byte) (media.UploadResult, error) {
	return media.UploadResult{}, nil
}

func (r *recordingMedia) Delete(ctx context.Context, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, handle)
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	changed []string
}

func (n *recordingNotifier) Notify(collection string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, collection)
}

type postServiceFixture struct {
	svc      PostService
	db       *gorm.DB
	media    *recordingMedia
	notifier *recordingNotifier
	author   models.User
}

func newPostServiceFixture(t *testing.T) *postServiceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	author := models.User{Username: "writer", Email: "writer@example.com", Password: "x", Role: models.RoleWriter}
	require.NoError(t, db.Create(&author).Error)

	rec := &recordingMedia{}
	notifier := &recordingNotifier{}
	log := logrus.New()

	svc := NewPostService(
		repositories.NewPostRepository(db),
		repositories.NewTagRepository(db),
		media.NewAdapter(rec, log),
		notifier,
		log,
	)

	return &postServiceFixture{svc: svc, db: db, media: rec, notifier: notifier, author: author}
}

func TestCreatePostNormalizesTags(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title: "Tagged",
		Tags:  []string{"Go", " go ", "", "web", "GO"},
	}, content.HTMLContent("<p>body</p>"), f.author.ID)
	require.NoError(t, err)

	require.Len(t, post.Tags, 2)
	names := []string{post.Tags[0].Name, post.Tags[1].Name}
	assert.ElementsMatch(t, []string{"Go", "web"}, names)
}

func TestCreatePostPublishSetsTimestamp(t *testing.T) {
	f := newPostServiceFixture(t)

	draft, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title: "Draft",
	}, content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)

	published, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title:  "Live",
		Status: models.StatusPublished,
	}, content.HTMLContent("<p>b</p>"), f.author.ID)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
}

func TestCreatePostSlugsAreUnique(t *testing.T) {
	f := newPostServiceFixture(t)

	first, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{Title: "Same Title"},
		content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, "same-title", first.Slug)

	second, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{Title: "Same Title"},
		content.HTMLContent("<p>b</p>"), f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, "same-title-2", second.Slug)
}

func TestCreatePostSanitizesHTMLBody(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{Title: "XSS"},
		content.HTMLContent(`<p>ok</p><script>alert(1)</script>`), f.author.ID)
	require.NoError(t, err)

	assert.Contains(t, post.Body.HTML(), "<p>ok</p>")
	assert.NotContains(t, post.Body.HTML(), "<script>")
}

func TestUpdatePostReleasesReplacedImage(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title:               "With image",
		FeaturedImageURL:    "https://cdn.example.com/old.png",
		FeaturedImageHandle: "old-handle",
	}, content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)

	updated, err := f.svc.UpdatePost(context.Background(), post.ID, models.SubmitPostRequest{
		Title:               "With image",
		FeaturedImageURL:    "https://cdn.example.com/new.png",
		FeaturedImageHandle: "new-handle",
	}, content.HTMLContent("<p>a</p>"), f.author.ID, models.RoleWriter)
	require.NoError(t, err)

	// the new handle is stored, the old one released
	assert.Equal(t, "new-handle", updated.FeaturedImageHandle)
	assert.Equal(t, []string{"old-handle"}, f.media.deletes)

	// a save that keeps the image releases nothing
	_, err = f.svc.UpdatePost(context.Background(), post.ID, models.SubmitPostRequest{
		Title: "With image",
	}, content.HTMLContent("<p>b</p>"), f.author.ID, models.RoleWriter)
	require.NoError(t, err)
	assert.Len(t, f.media.deletes, 1)
}

func TestUpdatePostPermissions(t *testing.T) {
	f := newPostServiceFixture(t)

	other := models.User{Username: "other", Email: "other@example.com", Password: "x", Role: models.RoleWriter}
	require.NoError(t, f.db.Create(&other).Error)

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{Title: "Mine"},
		content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(context.Background(), post.ID, models.SubmitPostRequest{Title: "Stolen"},
		content.HTMLContent("<p>b</p>"), other.ID, models.RoleWriter)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// editors may update anyone's post
	_, err = f.svc.UpdatePost(context.Background(), post.ID, models.SubmitPostRequest{Title: "Edited"},
		content.HTMLContent("<p>c</p>"), other.ID, models.RoleEditor)
	assert.NoError(t, err)
}

func TestSaveDraftPartialUpdate(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title:   "Autosaved",
		Excerpt: "unchanged",
	}, content.HTMLContent("<p>v1</p>"), f.author.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.SaveDraft(context.Background(), post.ID, content.HTMLContent("<p>v2</p>")))

	reloaded, err := f.svc.GetPost(post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "<p>v2</p>", reloaded.Body.HTML())
	assert.Equal(t, "unchanged", reloaded.Excerpt)
	assert.Equal(t, "Autosaved", reloaded.Title)
}

func TestSaveDraftUnknownPost(t *testing.T) {
	f := newPostServiceFixture(t)
	err := f.svc.SaveDraft(context.Background(), 9999, content.HTMLContent("<p>x</p>"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPostPublicVisibility(t *testing.T) {
	f := newPostServiceFixture(t)

	draft, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{Title: "Hidden"},
		content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)

	// drafts are invisible on the public surface but not the admin one
	_, err = f.svc.GetPost(draft.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.GetPost(draft.ID, false)
	assert.NoError(t, err)

	live, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title: "Visible", Status: models.StatusPublished,
	}, content.HTMLContent("<p>b</p>"), f.author.ID)
	require.NoError(t, err)

	got, err := f.svc.GetPost(live.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	got, err = f.svc.GetPostBySlug(live.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestDeletePostReleasesAllAssets(t *testing.T) {
	f := newPostServiceFixture(t)

	doc := content.NewDocument().
		InsertMedia(0, content.MediaInfo{URL: "/a.png", Kind: content.MediaImage, Handle: "body-1"}).
		InsertMedia(0, content.MediaInfo{URL: "/b.png", Kind: content.MediaImage, Handle: "body-2"})

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title:               "Doomed",
		FeaturedImageURL:    "https://cdn.example.com/f.png",
		FeaturedImageHandle: "featured-1",
	}, content.BlockContent(doc), f.author.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePost(context.Background(), post.ID, f.author.ID, models.RoleWriter))

	assert.ElementsMatch(t, []string{"featured-1", "body-1", "body-2"}, f.media.deletes)

	_, err = f.svc.GetPost(post.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostChangesNotifyLiveSubscribers(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{Title: "N"},
		content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeletePost(context.Background(), post.ID, f.author.ID, models.RoleWriter))

	assert.Equal(t, []string{"posts", "posts"}, f.notifier.changed)
}

func TestTagUsageCounts(t *testing.T) {
	f := newPostServiceFixture(t)

	_, err := f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title: "One", Status: models.StatusPublished, Tags: []string{"go"},
	}, content.HTMLContent("<p>a</p>"), f.author.ID)
	require.NoError(t, err)

	_, err = f.svc.CreatePost(context.Background(), models.SubmitPostRequest{
		Title: "Two", Status: models.StatusPublished, Tags: []string{"go", "web"},
	}, content.HTMLContent("<p>b</p>"), f.author.ID)
	require.NoError(t, err)

	var goTag models.Tag
	require.NoError(t, f.db.Where("name = ?", "go").First(&goTag).Error)
	assert.Equal(t, 2, goTag.UsageCount)

	var webTag models.Tag
	require.NoError(t, f.db.Where("name = ?", "web").First(&webTag).Error)
	assert.Equal(t, 1, webTag.UsageCount)
}
