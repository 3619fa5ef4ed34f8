package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"lumen-cms/content"
	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

// ChangeNotifier receives a signal whenever a public collection
// changes, so live subscribers can re-fetch.
type ChangeNotifier interface {
	Notify(collection string)
}

type PostService interface {
	CreatePost(ctx context.Context, req models.SubmitPostRequest, body content.Content, authorID uint) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, req models.SubmitPostRequest, body content.Content, userID uint, role models.UserRole) (*models.Post, error)
	SaveDraft(ctx context.Context, id uint, body content.Content) error
	GetPost(id uint, isPublic bool) (*models.Post, error)
	GetPostBySlug(slug string, isPublic bool) (*models.Post, error)
	GetPosts(params models.PostListParams, isPublic bool) ([]models.Post, int64, error)
	DeletePost(ctx context.Context, id uint, userID uint, role models.UserRole) error
}

type postService struct {
	postRepo repositories.PostRepository
	tagRepo  repositories.TagRepository
	media    *media.Adapter
	notifier ChangeNotifier
	log      *logrus.Logger
}

func NewPostService(postRepo repositories.PostRepository, tagRepo repositories.TagRepository, uploads *media.Adapter, notifier ChangeNotifier, log *logrus.Logger) PostService {
	if log == nil {
		log = logrus.New()
	}
	return &postService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		media:    uploads,
		notifier: notifier,
		log:      log,
	}
}

func (s *postService) CreatePost(ctx context.Context, req models.SubmitPostRequest, body content.Content, authorID uint) (*models.Post, error) {
	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	post := &models.Post{
		AuthorID:            authorID,
		Title:               req.Title,
		Slug:                s.uniqueSlug(req.Title),
		Excerpt:             req.Excerpt,
		Body:                sanitizeBody(body),
		Status:              status,
		Category:            req.Category,
		Tags:                tags,
		FeaturedImageURL:    req.FeaturedImageURL,
		FeaturedImageHandle: req.FeaturedImageHandle,
		VideoURL:            req.VideoURL,
	}
	if status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.updateTagUsageCounts()
	s.changed("posts")

	return s.postRepo.GetByID(post.ID)
}

// UpdatePost is the explicit-save path. The new state is persisted
// first; only then is a replaced featured image's handle released, so
// a failed persist never orphans the only reference to an asset.
func (s *postService) UpdatePost(ctx context.Context, id uint, req models.SubmitPostRequest, body content.Content, userID uint, role models.UserRole) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.AuthorID != userID && role != models.RoleAdmin && role != models.RoleEditor {
		return nil, ErrUnauthorized
	}

	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	oldHandle := post.FeaturedImageHandle

	post.Title = req.Title
	post.Excerpt = req.Excerpt
	post.Body = sanitizeBody(body)
	post.Category = req.Category
	post.VideoURL = req.VideoURL
	if req.FeaturedImageURL != "" {
		post.FeaturedImageURL = req.FeaturedImageURL
		post.FeaturedImageHandle = req.FeaturedImageHandle
	}
	if req.Status != "" && req.Status != post.Status {
		post.Status = req.Status
		if req.Status == models.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	if err := s.postRepo.ReplaceTags(post, tags); err != nil {
		return nil, err
	}

	// persist-then-cleanup: the replaced asset goes only after the
	// new state is safely stored
	if oldHandle != "" && post.FeaturedImageHandle != oldHandle {
		s.media.Cleanup(ctx, oldHandle)
	}

	s.updateTagUsageCounts()
	s.changed("posts")

	return s.postRepo.GetByID(post.ID)
}

// SaveDraft is the autosave write: a partial update of the body column
// keyed by the existing identifier.
func (s *postService) SaveDraft(ctx context.Context, id uint, body content.Content) error {
	err := s.postRepo.UpdateBody(id, sanitizeBody(body))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *postService) GetPost(id uint, isPublic bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if isPublic {
		if post.Status != models.StatusPublished {
			return nil, ErrNotFound
		}
		if err := s.postRepo.IncrementViews(post.ID); err != nil {
			s.log.WithError(err).WithField("post", post.ID).Warn("view counter update failed")
		} else {
			post.Views++
		}
	}
	return post, nil
}

func (s *postService) GetPostBySlug(slug string, isPublic bool) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if isPublic {
		if post.Status != models.StatusPublished {
			return nil, ErrNotFound
		}
		if err := s.postRepo.IncrementViews(post.ID); err != nil {
			s.log.WithError(err).WithField("post", post.ID).Warn("view counter update failed")
		} else {
			post.Views++
		}
	}
	return post, nil
}

func (s *postService) GetPosts(params models.PostListParams, isPublic bool) ([]models.Post, int64, error) {
	return s.postRepo.GetList(params, isPublic)
}

func (s *postService) DeletePost(ctx context.Context, id uint, userID uint, role models.UserRole) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.AuthorID != userID && role != models.RoleAdmin && role != models.RoleEditor {
		return ErrUnauthorized
	}

	if err := s.postRepo.Delete(id); err != nil {
		return err
	}

	// advisory cleanup of the post's remote assets
	s.media.Cleanup(ctx, post.FeaturedImageHandle)
	if post.Body.Shape == content.ShapeBlocks && post.Body.Doc != nil {
		for _, handle := range post.Body.Doc.MediaHandles() {
			s.media.Cleanup(ctx, handle)
		}
	}

	s.updateTagUsageCounts()
	s.changed("posts")
	return nil
}

// sanitizeBody forces raw HTML bodies through the allow-list policy.
// Block-model bodies render through the escaping renderer and need no
// extra pass.
func sanitizeBody(body content.Content) content.Content {
	if body.Shape == content.ShapeHTML {
		return content.HTMLContent(content.SanitizeHTML(body.Raw))
	}
	return body
}

// processTags resolves tag names to rows, creating missing ones.
// Duplicates are dropped with the first occurrence winning, so the
// stored list is unique and order-preserving.
func (s *postService) processTags(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		tag, err := s.tagRepo.GetByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				newTag := &models.Tag{Name: name}
				if err := s.tagRepo.Create(newTag); err != nil {
					return nil, err
				}
				tags = append(tags, *newTag)
				continue
			}
			return nil, err
		}
		tags = append(tags, *tag)
	}

	return tags, nil
}

func (s *postService) updateTagUsageCounts() {
	counts, err := s.postRepo.CountPostsByTag()
	if err != nil {
		s.log.WithError(err).Warn("tag usage recount failed")
		return
	}

	allTags, err := s.tagRepo.GetAll()
	if err != nil {
		return
	}
	for i := range allTags {
		allTags[i].UsageCount = counts[allTags[i].ID]
	}
	if err := s.tagRepo.BulkUpdate(allTags); err != nil {
		s.log.WithError(err).Warn("tag usage update failed")
	}
}

func (s *postService) changed(collection string) {
	if s.notifier != nil {
		s.notifier.Notify(collection)
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}

func (s *postService) uniqueSlug(title string) string {
	base := slugify(title)
	slug := base
	for i := 2; ; i++ {
		if _, err := s.postRepo.GetBySlug(slug); errors.Is(err, gorm.ErrRecordNotFound) {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
