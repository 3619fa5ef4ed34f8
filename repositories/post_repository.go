package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"lumen-cms/content"
	"lumen-cms/models"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	GetList(params models.PostListParams, isPublic bool) ([]models.Post, int64, error)
	Update(post *models.Post) error
	UpdateBody(id uint, body content.Content) error
	ReplaceTags(post *models.Post, tags []models.Tag) error
	IncrementViews(id uint) error
	Delete(id uint) error
	CountPostsByTag() (map[uint]int, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Tags").First(&post, id).Error
	return &post, err
}

func (r *postRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Tags").Where("slug = ?", slug).First(&post).Error
	return &post, err
}

func (r *postRepository) GetList(params models.PostListParams, isPublic bool) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.Model(&models.Post{}).Preload("Author").Preload("Tags")

	if isPublic {
		query = query.Where("posts.status = ?", models.StatusPublished)
	} else if params.Status != "" {
		query = query.Where("posts.status = ?", params.Status)
	}

	if params.Category != "" {
		query = query.Where("posts.category = ?", params.Category)
	}

	if params.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", params.AuthorID)
	}

	if params.Tag != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", params.Tag)
	}

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("posts.title LIKE ? OR posts.excerpt LIKE ?", like, like)
	}

	query.Count(&total)

	sortBy := params.SortBy
	switch sortBy {
	case "created_at", "published_at", "views", "title":
	default:
		sortBy = "created_at"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("posts.%s %s", sortBy, sortOrder))

	offset := (params.Page - 1) * params.Limit
	err := query.Offset(offset).Limit(params.Limit).Find(&posts).Error

	return posts, total, err
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// UpdateBody writes only the body column, the partial update an
// autosave performs.
func (r *postRepository) UpdateBody(id uint, body content.Content) error {
	res := r.db.Model(&models.Post{}).Where("id = ?", id).Update("body", body)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) ReplaceTags(post *models.Post, tags []models.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *postRepository) CountPostsByTag() (map[uint]int, error) {
	var results []struct {
		TagID uint
		Count int
	}

	query := `
		SELECT
			pt.tag_id,
			COUNT(*) as count
		FROM post_tags pt
		JOIN posts p ON pt.post_id = p.id
		WHERE p.status = 'published' AND p.deleted_at IS NULL
		GROUP BY pt.tag_id
	`

	if err := r.db.Raw(query).Scan(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, result := range results {
		counts[result.TagID] = result.Count
	}
	return counts, nil
}
