package models

import (
	"time"

	"gorm.io/gorm"

	"lumen-cms/content"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// Post is the edited artifact of the content pipeline. Body holds
// either a sanitized HTML string or the serialized block model,
// depending on which editor mode last produced it.
type Post struct {
	ID                  uint            `json:"id" gorm:"primarykey"`
	AuthorID            uint            `json:"author_id" gorm:"not null"`
	Author              User            `json:"author" gorm:"foreignKey:AuthorID"`
	Title               string          `json:"title" gorm:"not null"`
	Slug                string          `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt             string          `json:"excerpt"`
	Body                content.Content `json:"body" gorm:"type:text"`
	Status              PostStatus      `json:"status" gorm:"default:'draft';index"`
	Category            string          `json:"category" gorm:"index"`
	Tags                []Tag           `json:"tags" gorm:"many2many:post_tags;"`
	Views               int64           `json:"views" gorm:"default:0"`
	FeaturedImageURL    string          `json:"featured_image_url"`
	FeaturedImageHandle string          `json:"-"`
	VideoURL            string          `json:"video_url"`
	PublishedAt         *time.Time      `json:"published_at"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `json:"-" gorm:"index"`
}

// WordCount counts the words of the rendered body.
func (p *Post) WordCount() int {
	return content.WordCount(p.Body.HTML())
}

// ReadingTime is the estimated minutes to read the body.
func (p *Post) ReadingTime() int {
	return content.ReadingTime(p.WordCount())
}
